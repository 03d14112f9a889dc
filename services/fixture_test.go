package services

import (
	"fmt"
	"time"

	"aasaasi/models"
	"aasaasi/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testDataset() *store.Dataset {
	ds := &store.Dataset{
		Dictionary: []models.DictionaryEntry{
			{
				English: "book", Somali: "buug", PartOfSpeech: "noun", Pronunciation: "/bʊk/",
				Meaning: "a set of printed pages", WordForms: "books", Phrase: "by the book",
				UsageNote: "countable", Examples: []string{"I read a book."},
			},
			{English: "water", Somali: "biyo"},
			{English: "watermelon", Somali: "qare"},
		},
		GrammarTopics: []models.GrammarTopic{
			{Slug: "past-simple", Title: "Past Simple", Order: 2},
			{Slug: "present-simple", Title: "Present Simple", Order: 1},
		},
		GrammarTips: []models.GrammarTips{{Topic: "present-simple", Tips: []string{"Add -s for he/she/it"}}},
		GrammarQuestions: []models.GrammarQuestion{
			{Topic: "present-simple", Question: "She ___ tea.", Options: []string{"drink", "drinks"}, Answer: "drinks"},
		},
		Idioms: []models.Idiom{
			{ID: "I0", Idiom: "Break the ice"},
			{ID: "I1", Idiom: "Piece of cake"},
			{ID: "I2", Idiom: "Hit the books"},
		},
		VocabMCQ: []models.VocabItem{
			{Answer: "zeal", Meaning: "great energy", Choices: []string{"passion", "apathy"}, Level: "B2"},
			{Answer: "Apple", Meaning: "a fruit", Choices: []string{"fruit"}, Level: "A1"},
		},
		VocabFill: []models.VocabItem{
			{Answer: "brave", Meaning: "not afraid", Level: "A2"},
			{Answer: " ", Meaning: "blank"},
		},
		WodWords: []models.WodWord{
			{ID: "W0", Word: "serene", Definition: "calm", Example: "A serene lake."},
			{ID: "W1", Word: "candid", Definition: "honest"},
		},
		Tests: []models.TestDoc{{
			Kind:  "vocab",
			Title: "",
			Sections: []models.TestSection{
				{Name: " Part A ", Items: []models.TestItem{
					{ID: 1, Prompt: "Opposite of hot", Choices: []string{"cold", "warm"}, Answer: "Cold"},
					{ID: 2, Prompt: "Synonym of big", Choices: []string{"large", "tiny"}, Answer: "large"},
				}},
				{Name: "Part B", Items: []models.TestItem{
					{Prompt: "Plural of mouse", Answer: "mice"},
				}},
			},
		}},
	}

	bands := []struct{ quick, level6 string }{
		{"Beginner", "A1"},
		{"Intermediate", "B1"},
		{"Advanced", "C1"},
	}
	for _, b := range bands {
		for i := 0; i < 5; i++ {
			ds.Questions = append(ds.Questions, models.TestQuestion{
				ID:          fmt.Sprintf("%s-%d", b.quick, i),
				Question:    fmt.Sprintf("%s question %d", b.quick, i),
				Correct:     "right",
				Distractor1: "wrong1",
				Distractor2: "wrong2",
				Quick3:      b.quick,
				Level6:      b.level6,
			})
		}
	}
	return ds
}

func testStore() *store.StaticStore {
	return store.NewStaticStoreFromDataset(testDataset())
}
