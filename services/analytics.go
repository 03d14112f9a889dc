package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"aasaasi/internal/logger"
	"aasaasi/models"
	"aasaasi/store"
)

// legacyKinds maps the older event "type" names onto kinds.
var legacyKinds = map[string]string{
	"word_searched":   models.KindDictionarySearch,
	"vocab_marked":    models.KindWordLearned,
	"quiz_completed":  models.KindQuizCompleted,
	"grammar_studied": models.KindGrammarStudied,
	"time_spent":      models.KindTimeSpent,
	"page_view":       models.KindPageView,
}

// EventInput accepts both the current {kind, payload, ts} body and the
// legacy {type, meta, at} one.
type EventInput struct {
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload"`
	TS      string         `json:"ts"`

	Type string         `json:"type"`
	Meta map[string]any `json:"meta"`
	At   string         `json:"at"`
}

type Stats struct {
	WordsLearned       int `json:"wordsLearned"`
	WordsSearched      int `json:"wordsSearched"`
	CurrentStreak      int `json:"currentStreak"`
	Accuracy           int `json:"accuracy"`
	QuizzesCompleted   int `json:"quizzesCompleted"`
	TimeSpent          int `json:"timeSpent"`
	GrammarTopicsCount int `json:"grammarTopicsCount"`
}

type DayCount struct {
	Day    string `json:"day"`
	Events int    `json:"events"`
}

type Recommendation struct {
	Type     string   `json:"type"`
	Items    []string `json:"items"`
	Priority string   `json:"priority"`
	Reason   string   `json:"reason"`
}

type Summary struct {
	Stats           Stats            `json:"stats"`
	Weekly          []DayCount       `json:"weekly"`
	Recommendations []Recommendation `json:"recommendations"`
}

type AnalyticsService struct {
	events store.ActivityStore
	log    *logger.Logger
	now    func() time.Time
}

func NewAnalyticsService(events store.ActivityStore, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{events: events, log: log, now: time.Now}
}

// Normalize turns an event body into a stored event for sessionID.
func (s *AnalyticsService) Normalize(sessionID string, in EventInput) models.ActivityEvent {
	now := s.now().UTC()

	var (
		kind string
		meta map[string]any
		ts   string
	)
	if in.Kind != "" || in.Payload != nil {
		kind = strings.TrimSpace(in.Kind)
		meta = in.Payload
		ts = in.TS
	} else {
		t := strings.TrimSpace(in.Type)
		kind = t
		if mapped, ok := legacyKinds[t]; ok {
			kind = mapped
		}
		meta = in.Meta
		if meta == nil {
			meta = map[string]any{}
		}
		if _, ok := meta["term"]; t == "word_searched" && !ok {
			if q, ok := meta["query"]; ok {
				meta["term"] = q
				delete(meta, "query")
			}
		}
		if _, ok := meta["word"]; t == "vocab_marked" && !ok {
			if term, ok := meta["term"]; ok {
				meta["word"] = term
			}
		}
		ts = in.At
	}
	if kind == "" {
		kind = models.KindPageView
	}
	if meta == nil {
		meta = map[string]any{}
	}

	at := now
	if ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			at = parsed.UTC()
		}
	}
	return models.ActivityEvent{SessionID: sessionID, Kind: kind, Payload: meta, TS: at, CreatedAt: now}
}

func (s *AnalyticsService) Record(ctx context.Context, sessionID string, in EventInput) error {
	if err := s.events.Record(ctx, s.Normalize(sessionID, in)); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Summary aggregates the session's activity over the last days.
func (s *AnalyticsService) Summary(ctx context.Context, sessionID string, days int) (*Summary, error) {
	if days < 1 || days > 365 {
		return nil, invalid("days must be between 1 and 365")
	}
	now := s.now().UTC()
	evs, err := s.events.ReadAll(ctx, sessionID, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}

	var (
		stats       Stats
		accuracies  []float64
		timeSpent   float64
		learned     = map[string]bool{}
		topics      = map[string]bool{}
		searchTerms = map[string]int{}
		byDay       = map[string]int{}
		activeDays  = map[string]bool{}
	)
	for _, e := range evs {
		day := e.TS.UTC().Format(dateLayout)
		byDay[day]++
		activeDays[day] = true

		p := e.Payload
		switch e.Kind {
		case models.KindDictionarySearch:
			stats.WordsSearched++
			term := strings.ToLower(strings.TrimSpace(firstString(p, "term", "word")))
			if term != "" {
				searchTerms[term]++
			}
		case models.KindWordLearned:
			if w := strings.TrimSpace(firstString(p, "word")); w != "" {
				learned[w] = true
			}
		case models.KindQuizCompleted:
			accuracies = append(accuracies, number(p["accuracy"]))
			stats.QuizzesCompleted++
		case models.KindTimeSpent:
			timeSpent += number(p["seconds"])
		case models.KindGrammarStudied:
			if t := strings.TrimSpace(firstString(p, "topic")); t != "" {
				topics[t] = true
			}
		}
	}

	if len(accuracies) > 0 {
		var sum float64
		for _, a := range accuracies {
			sum += a
		}
		stats.Accuracy = int(math.Round(sum / float64(len(accuracies))))
	}
	stats.WordsLearned = len(learned)
	stats.GrammarTopicsCount = len(topics)
	stats.TimeSpent = int(math.Round(timeSpent / 60))
	stats.CurrentStreak = streak(activeDays, now)

	weekly := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(dateLayout)
		weekly = append(weekly, DayCount{Day: d, Events: byDay[d]})
	}

	return &Summary{
		Stats:           stats,
		Weekly:          weekly,
		Recommendations: recommend(stats, searchTerms),
	}, nil
}

// streak counts consecutive active days ending today.
func streak(active map[string]bool, now time.Time) int {
	n := 0
	for d := now; active[d.Format(dateLayout)]; d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}

func recommend(stats Stats, searchTerms map[string]int) []Recommendation {
	var recs []Recommendation
	if stats.Accuracy > 0 && stats.Accuracy < 70 {
		recs = append(recs, Recommendation{
			Type:     "Practice Quizzes",
			Items:    []string{"Review last quiz", "Focus on weak items"},
			Priority: "high",
			Reason:   fmt.Sprintf("Average accuracy %d%%.", stats.Accuracy),
		})
	}
	if stats.WordsLearned > 0 && stats.WordsLearned < 10 {
		recs = append(recs, Recommendation{
			Type:     "Build Vocabulary",
			Items:    []string{"Learn 5 new words", "Review yesterday's words"},
			Priority: "medium",
			Reason:   "Grow your set.",
		})
	}
	if len(searchTerms) > 0 {
		terms := make([]string, 0, len(searchTerms))
		for t := range searchTerms {
			terms = append(terms, t)
		}
		sort.Slice(terms, func(i, j int) bool {
			if searchTerms[terms[i]] != searchTerms[terms[j]] {
				return searchTerms[terms[i]] > searchTerms[terms[j]]
			}
			return terms[i] < terms[j]
		})
		if len(terms) > 3 {
			terms = terms[:3]
		}
		recs = append(recs, Recommendation{
			Type:     "Words you looked up a lot",
			Items:    terms,
			Priority: "medium",
			Reason:   "Revisit frequent lookups.",
		})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Type:     "Getting Started",
			Items:    []string{"Try a short quiz", "Open Grammar: Present Simple", "Learn 3 new words"},
			Priority: "low",
			Reason:   "No activity yet.",
		})
	}
	return recs
}

func firstString(p map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := p[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// number reads a numeric payload value whether it came from JSON or BSON.
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
