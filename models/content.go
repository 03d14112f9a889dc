package models

import (
	"strings"
	"time"
)

// GrammarTopic is one entry of the grammar syllabus.
type GrammarTopic struct {
	Slug        string `json:"slug" bson:"slug"`
	Title       string `json:"title" bson:"title"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
	Level       string `json:"level,omitempty" bson:"level,omitempty"`
	Order       int    `json:"order" bson:"order"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type GrammarTips struct {
	Topic    string   `json:"topic" bson:"topic"`
	Title    string   `json:"title,omitempty" bson:"title,omitempty"`
	Tips     []string `json:"tips" bson:"tips"`
	Examples []string `json:"examples,omitempty" bson:"examples,omitempty"`
	Somali   string   `json:"somali,omitempty" bson:"somali,omitempty"`
}

type GrammarQuestion struct {
	Topic       string   `json:"topic" bson:"topic"`
	Question    string   `json:"question" bson:"question"`
	Options     []string `json:"options" bson:"options"`
	Answer      string   `json:"answer" bson:"answer"`
	Explanation string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// Idiom is the normalized idiom shape. The stored documents use a few
// alternative field names, which the stores fold into this one.
type Idiom struct {
	ID                string `json:"id"`
	Idiom             string `json:"idiom"`
	Meaning           string `json:"meaning"`
	SomaliTranslation string `json:"somaliTranslation"`
	Example           string `json:"example"`
	Origin            string `json:"origin"`
	Pronunciation     string `json:"pronunciation"`
	WeekLabel         string `json:"weekLabel,omitempty"`
}

// IdiomDoc is the raw stored idiom document.
type IdiomDoc struct {
	Idiom             string `json:"idiom" bson:"idiom"`
	Title             string `json:"title" bson:"title"`
	Meaning           string `json:"meaning" bson:"meaning"`
	Somali            string `json:"somali" bson:"somali"`
	SomaliTranslation string `json:"somaliTranslation" bson:"somaliTranslation"`
	Example           string `json:"example" bson:"example"`
	Sentence          string `json:"sentence" bson:"sentence"`
	Origin            string `json:"origin" bson:"origin"`
	Etymology         string `json:"etymology" bson:"etymology"`
	Pronunciation     string `json:"pronunciation" bson:"pronunciation"`
}

// Normalize folds the alternative field names.
func (d IdiomDoc) Normalize(id string) Idiom {
	return Idiom{
		ID:                id,
		Idiom:             firstNonEmpty(d.Idiom, d.Title),
		Meaning:           firstNonEmpty(d.Meaning),
		SomaliTranslation: firstNonEmpty(d.Somali, d.SomaliTranslation),
		Example:           firstNonEmpty(d.Example, d.Sentence),
		Origin:            firstNonEmpty(d.Origin, d.Etymology),
		Pronunciation:     firstNonEmpty(d.Pronunciation),
	}
}

// VocabKind names the two vocabulary exercise collections.
type VocabKind string

const (
	VocabMCQ  VocabKind = "MCQ"
	VocabFill VocabKind = "Fill-in"
)

// VocabItem is a stored vocabulary exercise.
type VocabItem struct {
	Answer            string   `json:"answer" bson:"answer"`
	Meaning           string   `json:"meaning" bson:"meaning"`
	Choices           []string `json:"choices,omitempty" bson:"choices,omitempty"`
	Level             string   `json:"level,omitempty" bson:"level,omitempty"`
	SomaliTranslation string   `json:"somaliTranslation,omitempty" bson:"somaliTranslation,omitempty"`
	Example           string   `json:"example,omitempty" bson:"example,omitempty"`
}

// VocabWord is the UI shape of a vocabulary item.
type VocabWord struct {
	Word              string   `json:"word"`
	Definition        string   `json:"definition"`
	SomaliTranslation string   `json:"somaliTranslation"`
	Example           string   `json:"example"`
	Synonyms          []string `json:"synonyms"`
	Level             string   `json:"level"`
	Category          string   `json:"category"`
}

// WodWord is a word-of-the-day candidate.
type WodWord struct {
	ID                string   `json:"-" bson:"-"`
	Word              string   `json:"word" bson:"word"`
	Pronunciation     string   `json:"pronunciation,omitempty" bson:"pronunciation,omitempty"`
	PartOfSpeech      string   `json:"partOfSpeech,omitempty" bson:"partOfSpeech,omitempty"`
	Definition        string   `json:"definition,omitempty" bson:"definition,omitempty"`
	SomaliTranslation string   `json:"somaliTranslation,omitempty" bson:"somaliTranslation,omitempty"`
	Level             string   `json:"level,omitempty" bson:"level,omitempty"`
	Example           string   `json:"example,omitempty" bson:"example,omitempty"`
	Examples          []string `json:"examples,omitempty" bson:"examples,omitempty"`
	Etymology         string   `json:"etymology,omitempty" bson:"etymology,omitempty"`
	Synonyms          []string `json:"synonyms,omitempty" bson:"synonyms,omitempty"`
}

// WodHistory records which word was shown on a day (YYYY-MM-DD).
type WodHistory struct {
	Date      string    `json:"date" bson:"date"`
	WordID    string    `json:"wordId" bson:"wordId"`
	Word      string    `json:"word" bson:"word"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// TestDoc is a fixed practice test of one kind (wod, vocab, idiom, english).
type TestDoc struct {
	Kind     string        `json:"kind" bson:"kind"`
	Title    string        `json:"title,omitempty" bson:"title,omitempty"`
	Sections []TestSection `json:"sections" bson:"sections"`
}

type TestSection struct {
	Name  string     `json:"name" bson:"name"`
	Items []TestItem `json:"items" bson:"items"`
}

type TestItem struct {
	ID      int      `json:"id" bson:"id"`
	Prompt  string   `json:"prompt" bson:"prompt"`
	Choices []string `json:"choices" bson:"choices"`
	Answer  string   `json:"answer,omitempty" bson:"answer"`
}

// WordOfDay is the normalized word-of-the-day response.
type WordOfDay struct {
	Date              string   `json:"date"`
	Word              string   `json:"word"`
	Pronunciation     string   `json:"pronunciation,omitempty"`
	PartOfSpeech      string   `json:"partOfSpeech,omitempty"`
	Definition        string   `json:"definition,omitempty"`
	SomaliTranslation string   `json:"somaliTranslation,omitempty"`
	Level             string   `json:"level,omitempty"`
	Examples          []string `json:"examples"`
	Etymology         string   `json:"etymology,omitempty"`
	Synonyms          []string `json:"synonyms"`
}

// NewWordOfDay shapes a stored word for date. A lone example becomes a
// one-item list.
func NewWordOfDay(date string, w WodWord) WordOfDay {
	examples := append([]string{}, w.Examples...)
	if len(examples) == 0 && !isBlank(w.Example) {
		examples = []string{strings.TrimSpace(w.Example)}
	}
	return WordOfDay{
		Date:              date,
		Word:              w.Word,
		Pronunciation:     w.Pronunciation,
		PartOfSpeech:      w.PartOfSpeech,
		Definition:        w.Definition,
		SomaliTranslation: w.SomaliTranslation,
		Level:             w.Level,
		Examples:          examples,
		Etymology:         w.Etymology,
		Synonyms:          append([]string{}, w.Synonyms...),
	}
}

// VocabWordFrom maps a stored exercise to the UI shape. MCQ choices double
// as synonyms.
func VocabWordFrom(it VocabItem, kind VocabKind) VocabWord {
	w := VocabWord{
		Word:              strings.TrimSpace(it.Answer),
		Definition:        it.Meaning,
		SomaliTranslation: it.SomaliTranslation,
		Example:           it.Example,
		Synonyms:          []string{},
		Level:             it.Level,
		Category:          string(kind),
	}
	if kind == VocabMCQ {
		w.Synonyms = append(w.Synonyms, it.Choices...)
	}
	return w
}

type VocabPage struct {
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Words  []VocabWord `json:"words"`
}

type SectionSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type KindSummary struct {
	Kind     string           `json:"kind"`
	Total    int              `json:"total"`
	Sections []SectionSummary `json:"sections"`
}

// SubmitAnswer is one practice-test answer.
type SubmitAnswer struct {
	SectionIndex int    `json:"section_index"`
	ID           int    `json:"id"`
	Answer       string `json:"answer"`
}

type SubmitResult struct {
	Score   int     `json:"score"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}
