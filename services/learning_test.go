package services

import (
	"context"
	"testing"

	"aasaasi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar(t *testing.T) {
	svc := NewLearningService(testStore())
	ctx := context.Background()

	topics, err := svc.GrammarTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "present-simple", topics[0].Slug)

	tips, err := svc.GrammarTips(ctx, "present-simple")
	require.NoError(t, err)
	assert.Equal(t, []string{"Add -s for he/she/it"}, tips.Tips)

	var nf *NotFoundError
	_, err = svc.GrammarTips(ctx, "past-simple")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No tips found for topic", nf.Detail)

	qs, err := svc.GrammarTest(ctx, "present-simple")
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	_, err = svc.GrammarTest(ctx, "past-simple")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No questions for topic", nf.Detail)
}

func TestVocabWords_AllMergesAndSorts(t *testing.T) {
	svc := NewLearningService(testStore())

	page, err := svc.VocabWords(context.Background(), "All", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	var words []string
	for _, w := range page.Words {
		words = append(words, w.Word)
	}
	assert.Equal(t, []string{"Apple", "brave", "zeal"}, words)
	assert.Equal(t, "Fill-in", page.Words[1].Category)

	page, err = svc.VocabWords(context.Background(), "All", "", 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Words, 1)
	assert.Equal(t, "brave", page.Words[0].Word)

	page, err = svc.VocabWords(context.Background(), "All", "", 5, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Empty(t, page.Words)
}

func TestVocabWords_Category(t *testing.T) {
	svc := NewLearningService(testStore())

	page, err := svc.VocabWords(context.Background(), "MCQ", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Words, 2)
	assert.Equal(t, "zeal", page.Words[0].Word)
	assert.Equal(t, []string{"passion", "apathy"}, page.Words[0].Synonyms)

	page, err = svc.VocabWords(context.Background(), "MCQ", "A1", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Words, 1)
	assert.Equal(t, "Apple", page.Words[0].Word)

	_, err = svc.VocabWords(context.Background(), "MCQ", "", 0, 0)
	var in *InputError
	assert.ErrorAs(t, err, &in)
}

func TestTestKinds(t *testing.T) {
	svc := NewLearningService(testStore())

	kinds, err := svc.TestKinds(context.Background())
	require.NoError(t, err)
	require.Len(t, kinds, 1)
	assert.Equal(t, models.KindSummary{
		Kind:  "vocab",
		Total: 3,
		Sections: []models.SectionSummary{
			{Name: "Part A", Count: 2},
			{Name: "Part B", Count: 1},
		},
	}, kinds[0])
}

func TestStartTest_HidesAnswers(t *testing.T) {
	svc := NewLearningService(testStore())

	doc, err := svc.StartTest(context.Background(), "vocab")
	require.NoError(t, err)
	assert.Equal(t, "VOCAB Test", doc.Title)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Part A", doc.Sections[0].Name)

	for _, sec := range doc.Sections {
		for _, it := range sec.Items {
			assert.Empty(t, it.Answer)
			assert.NotNil(t, it.Choices)
		}
	}
	assert.Equal(t, 1, doc.Sections[1].Items[0].ID)

	_, err = svc.StartTest(context.Background(), "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No test found for kind='nope'", nf.Detail)
}

func TestSubmitTest(t *testing.T) {
	svc := NewLearningService(testStore())

	res, err := svc.SubmitTest(context.Background(), "vocab", []models.SubmitAnswer{
		{SectionIndex: 0, ID: 1, Answer: " cold "},
		{SectionIndex: 0, ID: 2, Answer: "tiny"},
		{SectionIndex: 1, ID: 1, Answer: "MICE"},
	})
	require.NoError(t, err)
	assert.Equal(t, &models.SubmitResult{Score: 2, Total: 3, Percent: 66.67}, res)

	res, err = svc.SubmitTest(context.Background(), "vocab", nil)
	require.NoError(t, err)
	assert.Equal(t, &models.SubmitResult{Score: 0, Total: 1, Percent: 0}, res)

	_, err = svc.SubmitTest(context.Background(), "nope", nil)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Test kind not found", nf.Detail)
}
