package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"
)

const dateLayout = "2006-01-02"

type WordOfDayService struct {
	store store.WordOfDayStore
	log   *logger.Logger
	now   func() time.Time

	// pickMu serialises the first pick of a day within this process.
	pickMu sync.Mutex
}

func NewWordOfDayService(s store.WordOfDayStore, log *logger.Logger) *WordOfDayService {
	return &WordOfDayService{store: s, log: log, now: time.Now}
}

// Today returns the word for the current UTC day, choosing and recording
// one on the first request of the day.
func (s *WordOfDayService) Today(ctx context.Context) (*models.WordOfDay, error) {
	today := s.now().UTC().Format(dateLayout)

	s.pickMu.Lock()
	defer s.pickMu.Unlock()

	words, err := s.store.WodWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}

	hist, err := s.store.WodHistoryOn(ctx, today)
	if err == nil {
		w, ok := findWodWord(words, hist)
		if !ok {
			w = models.WodWord{Word: hist.Word}
		}
		out := models.NewWordOfDay(today, w)
		return &out, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load history: %w", err)
	}

	if len(words) == 0 {
		return nil, notFound("wod_words collection is empty")
	}

	past, err := s.store.WodHistory(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	used := make(map[string]bool, len(past))
	for _, h := range past {
		used[h.WordID] = true
	}
	var pool []models.WodWord
	for _, w := range words {
		if !used[w.ID] {
			pool = append(pool, w)
		}
	}
	// Every word has been shown: start over.
	if len(pool) == 0 {
		pool = words
	}

	choice := pool[rand.IntN(len(pool))]
	rec := models.WodHistory{Date: today, WordID: choice.ID, Word: choice.Word, CreatedAt: s.now().UTC()}
	if err := s.store.SaveWodHistory(ctx, rec); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	out := models.NewWordOfDay(today, choice)
	return &out, nil
}

// On returns the word recorded for a past date (YYYY-MM-DD).
func (s *WordOfDayService) On(ctx context.Context, date string) (*models.WordOfDay, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	hist, err := s.store.WodHistoryOn(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(fmt.Sprintf("No word recorded for %s", date))
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	words, err := s.store.WodWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	w, ok := findWodWord(words, hist)
	if !ok {
		return nil, notFound("Word doc missing")
	}
	out := models.NewWordOfDay(date, w)
	return &out, nil
}

// HistoryItem is one line of the word-of-the-day history.
type HistoryItem struct {
	Word string `json:"word"`
	Date string `json:"date"`
}

func (s *WordOfDayService) History(ctx context.Context, limit int) ([]HistoryItem, error) {
	if limit < 1 || limit > 30 {
		return nil, invalid("limit must be between 1 and 30")
	}
	hist, err := s.store.WodHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := make([]HistoryItem, 0, len(hist))
	for _, h := range hist {
		out = append(out, HistoryItem{Word: h.Word, Date: h.Date})
	}
	return out, nil
}

// SampleItem is a random word without a date.
type SampleItem struct {
	Word string  `json:"word"`
	Date *string `json:"date"`
}

// Sample returns up to limit random candidate words.
func (s *WordOfDayService) Sample(ctx context.Context, limit int) ([]SampleItem, error) {
	if limit < 1 || limit > 100 {
		return nil, invalid("limit must be between 1 and 100")
	}
	words, err := s.store.WodWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	idx := rand.Perm(len(words))
	if limit < len(idx) {
		idx = idx[:limit]
	}
	out := make([]SampleItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, SampleItem{Word: words[i].Word})
	}
	return out, nil
}

func findWodWord(words []models.WodWord, h *models.WodHistory) (models.WodWord, bool) {
	for _, w := range words {
		if h.WordID != "" && w.ID == h.WordID {
			return w, true
		}
	}
	for _, w := range words {
		if w.Word == h.Word {
			return w, true
		}
	}
	return models.WodWord{}, false
}
