package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aasaasi/internal/llm"
	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"
)

const recentWindow = 90 * 24 * time.Hour

var backfillSchema = &llm.Schema{
	Name: "dictionary-backfill",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":              map[string]any{"type": "string"},
			"headword":          map[string]any{"type": "string"},
			"pronunciation":     map[string]any{"type": "string"},
			"partOfSpeech":      map[string]any{"type": "string"},
			"wordForms":         map[string]any{"type": "string"},
			"phrase":            map[string]any{"type": "string"},
			"usageNote":         map[string]any{"type": "string"},
			"meaning":           map[string]any{"type": "string"},
			"somaliTranslation": map[string]any{"type": "string"},
			"examples": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 3,
			},
		},
	},
}

type DictionaryService struct {
	words   store.DictionaryStore
	cache   store.AICache
	ai      llm.Provider
	timeout time.Duration
	log     *logger.Logger
	rec     recorder
}

func NewDictionaryService(s store.Store, ai llm.Provider, timeout time.Duration, log *logger.Logger) *DictionaryService {
	return &DictionaryService{
		words:   s,
		cache:   s,
		ai:      ai,
		timeout: timeout,
		log:     log,
		rec:     recorder{events: s, log: log, now: time.Now},
	}
}

// Lookup finds term and, when the stored entry is incomplete, asks the AI
// to fill the missing fields. Unknown words are never invented.
func (s *DictionaryService) Lookup(ctx context.Context, sessionID, term string, dir models.Direction) (*models.WordOut, error) {
	q := strings.TrimSpace(term)
	if q == "" {
		return nil, invalid("Empty term")
	}

	var out *models.WordOut
	source := "store"
	backfilled := false

	entry, err := s.words.FindWord(ctx, q, dir)
	switch {
	case err == nil:
		w := models.NewWordOut(*entry, dir)
		out = &w
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("find word: %w", err)
	}

	if out != nil && out.Incomplete() {
		if filled := s.backfill(ctx, q, dir, *out); filled != nil {
			out = filled
			backfilled = true
			source = "store+ai"
		}
	}

	word := q
	if out != nil {
		word = out.Word
	}
	s.rec.record(ctx, sessionID, models.KindDictionarySearch, map[string]any{
		"word":       word,
		"dir":        string(dir),
		"found":      out != nil,
		"source":     source,
		"backfilled": backfilled,
	})

	if out == nil {
		return nil, notFound("Word not found")
	}
	return out, nil
}

func (s *DictionaryService) backfill(ctx context.Context, term string, dir models.Direction, base models.WordOut) *models.WordOut {
	if cached, err := s.cache.CachedBackfill(ctx, term, dir); err == nil {
		merged := mergeMissing(base, *cached)
		return &merged
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("ai cache read failed", "term", term, "error", err)
	}

	if !llm.Configured(s.ai) {
		return nil
	}

	known, err := json.Marshal(knownFields(base))
	if err != nil {
		return nil
	}
	direction := "English→Somali"
	if dir == models.SomaliToEnglish {
		direction = "Somali→English"
	}
	prompt := fmt.Sprintf("We are preparing a %s dictionary entry.\n"+
		"Headword: %q.\n"+
		"Known fields (DO NOT CHANGE, repeat exactly):\n%s\n\n"+
		"Fill ONLY the missing fields and return JSON with keys: "+
		"word, headword, pronunciation, partOfSpeech, wordForms, phrase, usageNote, meaning, somaliTranslation, examples "+
		"(examples = 1-3 short sentences). "+
		"For any field present in the known data, repeat the same value. Respond with JSON only.",
		direction, term, known)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := llm.UserPrompt(TutorSystemPrompt, prompt, 0.2)
	req.Schema = backfillSchema
	resp, err := s.ai.Generate(ctx, req)
	if err != nil {
		s.log.Warn("dictionary backfill failed", "term", term, "error", err)
		return nil
	}
	var data models.WordOut
	if err := resp.Decode(&data); err != nil {
		s.log.Warn("dictionary backfill unreadable", "term", term, "error", err)
		return nil
	}

	merged := mergeMissing(base, data)
	if err := s.cache.StoreBackfill(ctx, term, dir, merged); err != nil {
		s.log.Warn("ai cache write failed", "term", term, "error", err)
	}
	return &merged
}

func knownFields(w models.WordOut) map[string]any {
	known := map[string]any{}
	for k, v := range map[string]string{
		"word":              w.Word,
		"headword":          w.Headword,
		"somaliTranslation": w.SomaliTranslation,
		"meaning":           w.Meaning,
		"partOfSpeech":      w.PartOfSpeech,
		"pronunciation":     w.Pronunciation,
		"wordForms":         w.WordForms,
		"phrase":            w.Phrase,
		"usageNote":         w.UsageNote,
	} {
		if strings.TrimSpace(v) != "" {
			known[k] = v
		}
	}
	if len(w.Examples) > 0 {
		known["examples"] = w.Examples
	}
	return known
}

// mergeMissing copies AI values into fields the stored entry left empty.
func mergeMissing(base, ai models.WordOut) models.WordOut {
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	out := base
	fill(&out.Word, ai.Word)
	fill(&out.Headword, ai.Headword)
	fill(&out.Pronunciation, ai.Pronunciation)
	fill(&out.PartOfSpeech, ai.PartOfSpeech)
	fill(&out.WordForms, ai.WordForms)
	fill(&out.Phrase, ai.Phrase)
	fill(&out.UsageNote, ai.UsageNote)
	fill(&out.Meaning, ai.Meaning)
	fill(&out.SomaliTranslation, ai.SomaliTranslation)

	if len(out.Examples) == 0 {
		out.Examples = []string{}
		for _, ex := range ai.Examples {
			if ex = strings.TrimSpace(ex); ex != "" {
				out.Examples = append(out.Examples, ex)
			}
		}
	}
	out.Definition = out.Meaning
	out.AI = true
	return out
}

// Suggest returns distinct headwords starting with term.
func (s *DictionaryService) Suggest(ctx context.Context, sessionID, term string, dir models.Direction, limit int) ([]string, error) {
	if limit < 1 || limit > 20 {
		return nil, invalid("limit must be between 1 and 20")
	}
	q := strings.TrimSpace(term)
	if q == "" {
		return []string{}, nil
	}
	out, err := s.words.SuggestWords(ctx, q, dir, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest words: %w", err)
	}
	s.rec.record(ctx, sessionID, models.KindWordSuggest, map[string]any{
		"word":  q,
		"dir":   string(dir),
		"found": len(out) > 0,
	})
	return out, nil
}

// Recent lists the session's latest distinct searched words, newest first.
func (s *DictionaryService) Recent(ctx context.Context, sessionID string, limit int) ([]string, error) {
	if limit < 1 || limit > 50 {
		return nil, invalid("limit must be between 1 and 50")
	}
	events, err := s.rec.events.ReadAll(ctx, sessionID, s.rec.now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}

	out := []string{}
	seen := map[string]bool{}
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := events[i]
		if ev.Kind != models.KindDictionarySearch {
			continue
		}
		w, _ := ev.Payload["word"].(string)
		if w == "" || seen[strings.ToLower(w)] {
			continue
		}
		seen[strings.ToLower(w)] = true
		out = append(out, w)
	}
	return out, nil
}
