package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"aasaasi/models"
)

// Dataset is the full content set as stored in the static JSON files.
type Dataset struct {
	Dictionary       []models.DictionaryEntry
	Questions        []models.TestQuestion
	GrammarTopics    []models.GrammarTopic
	GrammarTips      []models.GrammarTips
	GrammarQuestions []models.GrammarQuestion
	Idioms           []models.Idiom
	VocabMCQ         []models.VocabItem
	VocabFill        []models.VocabItem
	WodWords         []models.WodWord
	Tests            []models.TestDoc
}

// docID picks up either "_id" or "id" from a raw document. Extended JSON
// ({"$oid": "..."}) as written by mongoexport is accepted.
type docID struct {
	OID any `json:"_id"`
	ID  any `json:"id"`
}

func (d docID) value(fallback string) string {
	for _, v := range []any{d.OID, d.ID} {
		switch x := v.(type) {
		case string:
			if x != "" {
				return x
			}
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		case map[string]any:
			if s, ok := x["$oid"].(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// LoadDataset reads <dir>/<collection>.json for every content collection.
// A missing file leaves the collection empty.
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}

	plain := []struct {
		name string
		dst  any
	}{
		{ColDictionary, &ds.Dictionary},
		{ColGrammarTopics, &ds.GrammarTopics},
		{ColGrammarTips, &ds.GrammarTips},
		{ColGrammarQuestions, &ds.GrammarQuestions},
		{ColVocabMCQ, &ds.VocabMCQ},
		{ColVocabFill, &ds.VocabFill},
		{ColTests, &ds.Tests},
	}
	for _, p := range plain {
		raw, err := readJSON(dir, p.name)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		if err := json.Unmarshal(raw, p.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s.json: %w", p.name, err)
		}
	}

	questions, qids, err := loadWithIDs[models.TestQuestion](dir, ColQuestions, "Q")
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].ID = qids[i]
	}
	ds.Questions = questions

	words, wids, err := loadWithIDs[models.WodWord](dir, ColWodWords, "W")
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].ID = wids[i]
	}
	ds.WodWords = words

	idioms, iids, err := loadWithIDs[models.IdiomDoc](dir, ColIdioms, "I")
	if err != nil {
		return nil, err
	}
	for i, d := range idioms {
		ds.Idioms = append(ds.Idioms, d.Normalize(iids[i]))
	}

	return ds, nil
}

func readJSON(dir, name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s.json: %w", name, err)
	}
	return raw, nil
}

// loadWithIDs decodes a collection whose documents carry an id the model
// keeps out of its JSON shape. Documents without one get prefix+index.
func loadWithIDs[T any](dir, name, prefix string) ([]T, []string, error) {
	raw, err := readJSON(dir, name)
	if err != nil || raw == nil {
		return nil, nil, err
	}
	var docs []T
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s.json: %w", name, err)
	}
	var refs []docID
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s.json ids: %w", name, err)
	}
	ids := make([]string, len(refs))
	for i, d := range refs {
		ids[i] = d.value(fmt.Sprintf("%s%d", prefix, i))
	}
	return docs, ids, nil
}
