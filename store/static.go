package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"aasaasi/config"
	"aasaasi/models"
)

// StaticStore serves content from JSON files loaded once at start. Writes
// (activity, conversations, word-of-the-day history, AI cache) live in
// memory and are lost on restart.
type StaticStore struct {
	data *Dataset

	mu            sync.RWMutex
	events        []models.ActivityEvent
	conversations map[string]*models.Conversation
	wodHistory    map[string]models.WodHistory
	aiCache       map[string]models.WordOut
}

// NewStaticStore loads the dataset from dir.
func NewStaticStore(dir string) (*StaticStore, error) {
	ds, err := LoadDataset(dir)
	if err != nil {
		return nil, err
	}
	return NewStaticStoreFromDataset(ds), nil
}

func NewStaticStoreFromDataset(ds *Dataset) *StaticStore {
	return &StaticStore{
		data:          ds,
		conversations: make(map[string]*models.Conversation),
		wodHistory:    make(map[string]models.WodHistory),
		aiCache:       make(map[string]models.WordOut),
	}
}

func (s *StaticStore) Backend() string { return config.BackendStatic }

func (s *StaticStore) Ping(context.Context) error { return nil }

func (s *StaticStore) Close(context.Context) error { return nil }

func (s *StaticStore) Counts(context.Context) (map[string]int64, error) {
	return map[string]int64{
		ColDictionary: int64(len(s.data.Dictionary)),
		ColQuestions:  int64(len(s.data.Questions)),
		ColIdioms:     int64(len(s.data.Idioms)),
		ColWodWords:   int64(len(s.data.WodWords)),
	}, nil
}

// Dictionary

func (s *StaticStore) FindWord(_ context.Context, term string, dir models.Direction) (*models.DictionaryEntry, error) {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return nil, ErrNotFound
	}
	var prefix *models.DictionaryEntry
	for i := range s.data.Dictionary {
		e := &s.data.Dictionary[i]
		head := strings.ToLower(strings.TrimSpace(e.Headword(dir)))
		if head == q {
			out := *e
			return &out, nil
		}
		if prefix == nil && strings.HasPrefix(head, q) {
			prefix = e
		}
	}
	if prefix == nil {
		return nil, ErrNotFound
	}
	out := *prefix
	return &out, nil
}

func (s *StaticStore) SuggestWords(_ context.Context, prefix string, dir models.Direction, limit int) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(prefix))
	out := []string{}
	if q == "" {
		return out, nil
	}
	seen := make(map[string]bool)
	for _, e := range s.data.Dictionary {
		head := strings.TrimSpace(e.Headword(dir))
		low := strings.ToLower(head)
		if head == "" || seen[low] || !strings.HasPrefix(low, q) {
			continue
		}
		seen[low] = true
		out = append(out, head)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Questions

func (s *StaticStore) SampleQuestions(_ context.Context, filter QuestionFilter, n int) ([]models.TestQuestion, error) {
	var re *regexp.Regexp
	if filter.Field != "" {
		var err error
		if re, err = regexp.Compile("(?i)" + filter.Pattern); err != nil {
			return nil, fmt.Errorf("invalid question filter: %w", err)
		}
	}

	var pool []models.TestQuestion
	for _, q := range s.data.Questions {
		if q.Question == "" || q.Correct == "" {
			continue
		}
		if re != nil && !re.MatchString(questionField(q, filter.Field)) {
			continue
		}
		pool = append(pool, q)
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if n < len(pool) {
		pool = pool[:n]
	}
	return pool, nil
}

func questionField(q models.TestQuestion, field string) string {
	switch field {
	case "quick3":
		return q.Quick3
	case "level6":
		return q.Level6
	}
	return ""
}

func (s *StaticStore) QuestionsByID(_ context.Context, ids []string) (map[string]models.TestQuestion, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[string]models.TestQuestion, len(ids))
	for _, q := range s.data.Questions {
		if want[q.ID] {
			out[q.ID] = q
		}
	}
	return out, nil
}

// Content

func (s *StaticStore) GrammarTopics(context.Context) ([]models.GrammarTopic, error) {
	out := append([]models.GrammarTopic{}, s.data.GrammarTopics...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (s *StaticStore) GrammarTips(_ context.Context, topic string) (*models.GrammarTips, error) {
	for _, t := range s.data.GrammarTips {
		if t.Topic == topic {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *StaticStore) GrammarQuestions(_ context.Context, topic string) ([]models.GrammarQuestion, error) {
	var out []models.GrammarQuestion
	for _, q := range s.data.GrammarQuestions {
		if q.Topic == topic {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *StaticStore) Idioms(context.Context) ([]models.Idiom, error) {
	return append([]models.Idiom{}, s.data.Idioms...), nil
}

func (s *StaticStore) VocabItems(_ context.Context, kind models.VocabKind, level string) ([]models.VocabItem, error) {
	src := s.data.VocabMCQ
	if kind == models.VocabFill {
		src = s.data.VocabFill
	}
	var out []models.VocabItem
	for _, it := range src {
		if level != "" && it.Level != level {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *StaticStore) TestDocs(context.Context) ([]models.TestDoc, error) {
	return append([]models.TestDoc{}, s.data.Tests...), nil
}

func (s *StaticStore) TestByKind(_ context.Context, kind string) (*models.TestDoc, error) {
	for _, t := range s.data.Tests {
		if t.Kind == kind {
			out := t
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Word of the day

func (s *StaticStore) WodWords(context.Context) ([]models.WodWord, error) {
	return append([]models.WodWord{}, s.data.WodWords...), nil
}

func (s *StaticStore) WodHistoryOn(_ context.Context, date string) (*models.WodHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.wodHistory[date]
	if !ok {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (s *StaticStore) WodHistory(_ context.Context, limit int) ([]models.WodHistory, error) {
	s.mu.RLock()
	out := make([]models.WodHistory, 0, len(s.wodHistory))
	for _, h := range s.wodHistory {
		out = append(out, h)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *StaticStore) SaveWodHistory(_ context.Context, h models.WodHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wodHistory[h.Date] = h
	return nil
}

// Activity

func (s *StaticStore) Record(_ context.Context, ev models.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *StaticStore) ReadAll(_ context.Context, sessionID string, since time.Time) ([]models.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ActivityEvent
	for _, ev := range s.events {
		if ev.SessionID == sessionID && !ev.TS.Before(since) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TS.Before(out[j].TS) })
	return out, nil
}

// Conversations

func (s *StaticStore) AppendMessage(_ context.Context, sessionID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[sessionID]
	if !ok {
		conv = &models.Conversation{SessionID: sessionID, CreatedAt: msg.TS}
		s.conversations[sessionID] = conv
	}
	conv.Messages = append(conv.Messages, msg)
	return nil
}

func (s *StaticStore) Conversation(_ context.Context, sessionID string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *conv
	out.Messages = append([]models.ChatMessage{}, conv.Messages...)
	return &out, nil
}

// AI cache

func cacheKey(term string, dir models.Direction) string {
	return string(dir) + ":" + strings.ToLower(strings.TrimSpace(term))
}

func (s *StaticStore) CachedBackfill(_ context.Context, term string, dir models.Direction) (*models.WordOut, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.aiCache[cacheKey(term, dir)]
	if !ok {
		return nil, ErrNotFound
	}
	return &w, nil
}

func (s *StaticStore) StoreBackfill(_ context.Context, term string, dir models.Direction, entry models.WordOut) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiCache[cacheKey(term, dir)] = entry
	return nil
}
