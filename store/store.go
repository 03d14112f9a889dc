// Package store is the data access layer. Every endpoint reads and writes
// through these interfaces; the backend behind them is either MongoDB or a
// directory of static JSON files, chosen by configuration.
package store

import (
	"context"
	"errors"
	"time"

	"aasaasi/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")

	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("data source not ready")
)

// InvalidIDError names the id that could not be parsed. It matches
// ErrInvalidID with errors.Is.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string { return "invalid id: " + e.ID }

func (e *InvalidIDError) Is(target error) bool { return target == ErrInvalidID }

// Collection names, shared by both backends and the seed command.
const (
	ColDictionary       = "dictionary"
	ColQuestions        = "english_test_questions"
	ColGrammarTopics    = "grammar_topics"
	ColGrammarTips      = "grammar_tips"
	ColGrammarQuestions = "grammar_questions"
	ColIdioms           = "idiom_entries"
	ColVocabMCQ         = "vocab_tests_mcq"
	ColVocabFill        = "vocab_tests_fill"
	ColWodWords         = "wod_words"
	ColWodHistory       = "wod_history"
	ColTests            = "tests"
	ColEvents           = "events"
	ColConversations    = "conversations"
	ColAICache          = "ai_cache"
)

type DictionaryStore interface {
	// FindWord returns the entry whose headword equals term ignoring case,
	// or failing that the first entry whose headword starts with it.
	FindWord(ctx context.Context, term string, dir models.Direction) (*models.DictionaryEntry, error)
	// SuggestWords returns up to limit distinct headwords starting with prefix.
	SuggestWords(ctx context.Context, prefix string, dir models.Direction, limit int) ([]string, error)
}

// QuestionFilter restricts sampling to questions whose Field matches the
// case-insensitive regular expression Pattern. A zero filter matches all.
type QuestionFilter struct {
	Field   string
	Pattern string
}

type QuestionStore interface {
	SampleQuestions(ctx context.Context, filter QuestionFilter, n int) ([]models.TestQuestion, error)
	// QuestionsByID returns the questions keyed by id. Unknown ids are
	// simply absent; malformed ids yield ErrInvalidID.
	QuestionsByID(ctx context.Context, ids []string) (map[string]models.TestQuestion, error)
}

type ContentStore interface {
	GrammarTopics(ctx context.Context) ([]models.GrammarTopic, error)
	GrammarTips(ctx context.Context, topic string) (*models.GrammarTips, error)
	GrammarQuestions(ctx context.Context, topic string) ([]models.GrammarQuestion, error)
	// Idioms returns every idiom in insertion order.
	Idioms(ctx context.Context) ([]models.Idiom, error)
	VocabItems(ctx context.Context, kind models.VocabKind, level string) ([]models.VocabItem, error)
	TestDocs(ctx context.Context) ([]models.TestDoc, error)
	TestByKind(ctx context.Context, kind string) (*models.TestDoc, error)
}

type WordOfDayStore interface {
	WodWords(ctx context.Context) ([]models.WodWord, error)
	WodHistoryOn(ctx context.Context, date string) (*models.WodHistory, error)
	// WodHistory returns the most recent days first; limit <= 0 returns all.
	WodHistory(ctx context.Context, limit int) ([]models.WodHistory, error)
	// SaveWodHistory upserts the record for h.Date.
	SaveWodHistory(ctx context.Context, h models.WodHistory) error
}

// ActivityStore records learner activity per session.
type ActivityStore interface {
	Record(ctx context.Context, ev models.ActivityEvent) error
	// ReadAll returns the session's events at or after since, oldest first.
	ReadAll(ctx context.Context, sessionID string, since time.Time) ([]models.ActivityEvent, error)
}

type ConversationStore interface {
	AppendMessage(ctx context.Context, sessionID string, msg models.ChatMessage) error
	Conversation(ctx context.Context, sessionID string) (*models.Conversation, error)
}

// AICache keeps AI-completed dictionary entries per term and direction.
type AICache interface {
	CachedBackfill(ctx context.Context, term string, dir models.Direction) (*models.WordOut, error)
	StoreBackfill(ctx context.Context, term string, dir models.Direction, entry models.WordOut) error
}

type Store interface {
	DictionaryStore
	QuestionStore
	ContentStore
	WordOfDayStore
	ActivityStore
	ConversationStore
	AICache

	Backend() string
	Ping(ctx context.Context) error
	// Counts returns document counts of the main content collections.
	Counts(ctx context.Context) (map[string]int64, error)
	Close(ctx context.Context) error
}
