package models

import "time"

// Direction is the lookup direction of the bilingual dictionary.
type Direction string

const (
	EnglishToSomali Direction = "en-so"
	SomaliToEnglish Direction = "so-en"
)

// ParseDirection defaults to en-so; anything starting with "so" is so-en.
func ParseDirection(s string) Direction {
	if len(s) >= 2 && (s[:2] == "so" || s[:2] == "SO") {
		return SomaliToEnglish
	}
	return EnglishToSomali
}

// DictionaryEntry is a stored dictionary document.
type DictionaryEntry struct {
	English       string    `json:"english" bson:"english"`
	Somali        string    `json:"somali" bson:"somali"`
	PartOfSpeech  string    `json:"pos,omitempty" bson:"pos,omitempty"`
	Pronunciation string    `json:"pronunciation,omitempty" bson:"pronunciation,omitempty"`
	Meaning       string    `json:"meaning,omitempty" bson:"meaning,omitempty"`
	WordForms     string    `json:"wordForms,omitempty" bson:"wordForms,omitempty"`
	Phrase        string    `json:"phrase,omitempty" bson:"phrase,omitempty"`
	UsageNote     string    `json:"usageNote,omitempty" bson:"usageNote,omitempty"`
	Examples      []string  `json:"examples,omitempty" bson:"examples,omitempty"`
	Source        string    `json:"source,omitempty" bson:"source,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Headword returns the searchable side of the entry for a direction.
func (e DictionaryEntry) Headword(dir Direction) string {
	if dir == SomaliToEnglish {
		return e.Somali
	}
	return e.English
}

// WordOut is the lookup response.
type WordOut struct {
	Word              string   `json:"word" bson:"word"`
	Headword          string   `json:"headword,omitempty" bson:"headword,omitempty"`
	SomaliTranslation string   `json:"somaliTranslation,omitempty" bson:"somaliTranslation,omitempty"`
	Meaning           string   `json:"meaning,omitempty" bson:"meaning,omitempty"`
	Definition        string   `json:"definition,omitempty" bson:"definition,omitempty"`
	PartOfSpeech      string   `json:"partOfSpeech,omitempty" bson:"partOfSpeech,omitempty"`
	Pronunciation     string   `json:"pronunciation,omitempty" bson:"pronunciation,omitempty"`
	WordForms         string   `json:"wordForms,omitempty" bson:"wordForms,omitempty"`
	Phrase            string   `json:"phrase,omitempty" bson:"phrase,omitempty"`
	UsageNote         string   `json:"usageNote,omitempty" bson:"usageNote,omitempty"`
	Examples          []string `json:"examples" bson:"examples"`
	AI                bool     `json:"ai" bson:"ai"`
}

// NewWordOut shapes a stored entry for the given direction.
func NewWordOut(e DictionaryEntry, dir Direction) WordOut {
	out := WordOut{
		Headword:          e.English,
		SomaliTranslation: e.Somali,
		Meaning:           e.Meaning,
		Definition:        e.Meaning,
		PartOfSpeech:      e.PartOfSpeech,
		Pronunciation:     e.Pronunciation,
		WordForms:         e.WordForms,
		Phrase:            e.Phrase,
		UsageNote:         e.UsageNote,
		Examples:          append([]string{}, e.Examples...),
	}
	if dir == SomaliToEnglish {
		out.Word = firstNonEmpty(e.Somali, e.English)
	} else {
		out.Word = firstNonEmpty(e.English, e.Somali)
	}
	return out
}

// Incomplete reports whether any learner-facing field is still empty.
func (w WordOut) Incomplete() bool {
	for _, v := range []string{w.Meaning, w.SomaliTranslation, w.PartOfSpeech, w.Pronunciation, w.WordForms, w.Phrase, w.UsageNote} {
		if isBlank(v) {
			return true
		}
	}
	return len(w.Examples) == 0
}
