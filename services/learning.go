package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"aasaasi/models"
	"aasaasi/store"
)

// LearningService serves the static study material: grammar, vocabulary
// and the fixed practice tests.
type LearningService struct {
	content store.ContentStore
}

func NewLearningService(content store.ContentStore) *LearningService {
	return &LearningService{content: content}
}

// Grammar

func (s *LearningService) GrammarTopics(ctx context.Context) ([]models.GrammarTopic, error) {
	topics, err := s.content.GrammarTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("load grammar topics: %w", err)
	}
	if topics == nil {
		topics = []models.GrammarTopic{}
	}
	return topics, nil
}

func (s *LearningService) GrammarTips(ctx context.Context, topic string) (*models.GrammarTips, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, invalid("topic is required")
	}
	tips, err := s.content.GrammarTips(ctx, topic)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("No tips found for topic")
	}
	if err != nil {
		return nil, fmt.Errorf("load grammar tips: %w", err)
	}
	return tips, nil
}

func (s *LearningService) GrammarTest(ctx context.Context, topic string) ([]models.GrammarQuestion, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, invalid("topic is required")
	}
	qs, err := s.content.GrammarQuestions(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("load grammar questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, notFound("No questions for topic")
	}
	return qs, nil
}

// Vocabulary

const vocabAll = "All"

var VocabCategories = []string{vocabAll, string(models.VocabMCQ), string(models.VocabFill)}

// VocabWords pages through the vocabulary exercises. "All" merges both
// collections, drops entries without a word and sorts by word ignoring
// case; a single category keeps stored order.
func (s *LearningService) VocabWords(ctx context.Context, category, level string, limit, offset int) (*models.VocabPage, error) {
	if limit < 1 || limit > 100 {
		return nil, invalid("limit must be between 1 and 100")
	}
	if offset < 0 {
		return nil, invalid("offset must be >= 0")
	}

	load := func(kind models.VocabKind) ([]models.VocabWord, error) {
		items, err := s.content.VocabItems(ctx, kind, level)
		if err != nil {
			return nil, fmt.Errorf("load %s vocabulary: %w", kind, err)
		}
		out := make([]models.VocabWord, 0, len(items))
		for _, it := range items {
			out = append(out, models.VocabWordFrom(it, kind))
		}
		return out, nil
	}

	var words []models.VocabWord
	switch category {
	case string(models.VocabMCQ), string(models.VocabFill):
		w, err := load(models.VocabKind(category))
		if err != nil {
			return nil, err
		}
		words = w
	default:
		for _, kind := range []models.VocabKind{models.VocabMCQ, models.VocabFill} {
			w, err := load(kind)
			if err != nil {
				return nil, err
			}
			for _, x := range w {
				if x.Word != "" {
					words = append(words, x)
				}
			}
		}
		sort.SliceStable(words, func(i, j int) bool {
			return strings.ToLower(words[i].Word) < strings.ToLower(words[j].Word)
		})
	}

	page := &models.VocabPage{Total: len(words), Limit: limit, Offset: offset, Words: []models.VocabWord{}}
	if offset < len(words) {
		end := min(offset+limit, len(words))
		page.Words = words[offset:end]
	}
	return page, nil
}

// Practice tests

func (s *LearningService) TestKinds(ctx context.Context) ([]models.KindSummary, error) {
	docs, err := s.content.TestDocs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tests: %w", err)
	}
	out := make([]models.KindSummary, 0, len(docs))
	for _, d := range docs {
		k := models.KindSummary{Kind: d.Kind, Sections: []models.SectionSummary{}}
		for _, sec := range d.Sections {
			k.Total += len(sec.Items)
			k.Sections = append(k.Sections, models.SectionSummary{Name: strings.TrimSpace(sec.Name), Count: len(sec.Items)})
		}
		out = append(out, k)
	}
	return out, nil
}

// StartTest returns the test of a kind with the answers removed.
func (s *LearningService) StartTest(ctx context.Context, kind string) (*models.TestDoc, error) {
	doc, err := s.testByKind(ctx, kind, fmt.Sprintf("No test found for kind='%s'", kind))
	if err != nil {
		return nil, err
	}

	out := &models.TestDoc{Kind: doc.Kind, Title: doc.Title, Sections: []models.TestSection{}}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = strings.ToUpper(kind) + " Test"
	}
	for _, sec := range doc.Sections {
		clean := models.TestSection{Name: strings.TrimSpace(sec.Name), Items: []models.TestItem{}}
		for i, it := range sec.Items {
			choices := it.Choices
			if choices == nil {
				choices = []string{}
			}
			clean.Items = append(clean.Items, models.TestItem{
				ID:      itemID(it, i),
				Prompt:  strings.TrimSpace(it.Prompt),
				Choices: choices,
			})
		}
		out.Sections = append(out.Sections, clean)
	}
	return out, nil
}

// SubmitTest grades answers by (section index, item id), comparing trimmed
// strings ignoring case.
func (s *LearningService) SubmitTest(ctx context.Context, kind string, answers []models.SubmitAnswer) (*models.SubmitResult, error) {
	doc, err := s.testByKind(ctx, kind, "Test kind not found")
	if err != nil {
		return nil, err
	}

	type key struct{ section, id int }
	expected := make(map[key]string)
	for si, sec := range doc.Sections {
		for i, it := range sec.Items {
			expected[key{si, itemID(it, i)}] = strings.ToLower(strings.TrimSpace(it.Answer))
		}
	}

	score := 0
	for _, a := range answers {
		want, ok := expected[key{a.SectionIndex, a.ID}]
		if ok && strings.ToLower(strings.TrimSpace(a.Answer)) == want {
			score++
		}
	}
	total := max(1, len(answers))
	percent := math.Round(float64(score)/float64(total)*10000) / 100
	return &models.SubmitResult{Score: score, Total: total, Percent: percent}, nil
}

func (s *LearningService) testByKind(ctx context.Context, kind, missing string) (*models.TestDoc, error) {
	if strings.TrimSpace(kind) == "" {
		return nil, invalid("kind is required")
	}
	doc, err := s.content.TestByKind(ctx, kind)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(missing)
	}
	if err != nil {
		return nil, fmt.Errorf("load test: %w", err)
	}
	return doc, nil
}

// itemID numbers items without a stored id by position, from 1.
func itemID(it models.TestItem, idx int) int {
	if it.ID != 0 {
		return it.ID
	}
	return idx + 1
}
