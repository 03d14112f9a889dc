package store

import (
	"context"
	"fmt"

	"aasaasi/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImportReport is the number of documents written per collection.
type ImportReport map[string]int

// objectID keeps a hex id from the source file so exported and re-imported
// datasets stay addressable by the same question ids.
func objectID(id string) primitive.ObjectID {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return primitive.NewObjectID()
}

func toDocs[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

// Import writes a dataset into the content collections. With drop set the
// collections are emptied first; otherwise documents are appended.
func (m *MongoStore) Import(ctx context.Context, ds *Dataset, drop bool) (ImportReport, error) {
	questions := make([]questionDoc, len(ds.Questions))
	for i, q := range ds.Questions {
		questions[i] = questionDoc{ID: objectID(q.ID), TestQuestion: q}
	}
	words := make([]wodWordDoc, len(ds.WodWords))
	for i, w := range ds.WodWords {
		words[i] = wodWordDoc{ID: objectID(w.ID), WodWord: w}
	}
	idioms := make([]idiomDoc, len(ds.Idioms))
	for i, it := range ds.Idioms {
		idioms[i] = idiomDoc{ID: objectID(it.ID), IdiomDoc: models.IdiomDoc{
			Idiom:             it.Idiom,
			Meaning:           it.Meaning,
			SomaliTranslation: it.SomaliTranslation,
			Example:           it.Example,
			Origin:            it.Origin,
			Pronunciation:     it.Pronunciation,
		}}
	}

	batches := []struct {
		name string
		docs []any
	}{
		{ColDictionary, toDocs(ds.Dictionary)},
		{ColQuestions, toDocs(questions)},
		{ColGrammarTopics, toDocs(ds.GrammarTopics)},
		{ColGrammarTips, toDocs(ds.GrammarTips)},
		{ColGrammarQuestions, toDocs(ds.GrammarQuestions)},
		{ColIdioms, toDocs(idioms)},
		{ColVocabMCQ, toDocs(ds.VocabMCQ)},
		{ColVocabFill, toDocs(ds.VocabFill)},
		{ColWodWords, toDocs(words)},
		{ColTests, toDocs(ds.Tests)},
	}

	report := make(ImportReport, len(batches))
	for _, b := range batches {
		col := m.db.Collection(b.name)
		if drop {
			if err := col.Drop(ctx); err != nil {
				return report, fmt.Errorf("drop %s: %w", b.name, err)
			}
		}
		if len(b.docs) == 0 {
			report[b.name] = 0
			continue
		}
		res, err := col.InsertMany(ctx, b.docs)
		if err != nil {
			return report, fmt.Errorf("insert into %s: %w", b.name, err)
		}
		report[b.name] = len(res.InsertedIDs)
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		return report, err
	}
	return report, nil
}
