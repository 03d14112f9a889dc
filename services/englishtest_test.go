package services

import (
	"context"
	"testing"

	"aasaasi/models"
	"aasaasi/placement"
	"aasaasi/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersFor(prefix string, n int, selected string) []models.Answer {
	var out []models.Answer
	for i := 0; i < n; i++ {
		out = append(out, models.Answer{QID: prefix + "-" + string(rune('0'+i)), Selected: selected})
	}
	return out
}

func TestQuestions_QuickDefaults(t *testing.T) {
	svc := NewEnglishTestService(testStore())

	qs, err := svc.Questions(context.Background(), ModeQuick, 0)
	require.NoError(t, err)
	assert.Len(t, qs, 12)

	for _, q := range qs {
		assert.NotEmpty(t, q.ID)
		assert.ElementsMatch(t, []string{"right", "wrong1", "wrong2"}, q.Options)
	}
}

func TestQuestions_TotalAndCEFR(t *testing.T) {
	svc := NewEnglishTestService(testStore())

	qs, err := svc.Questions(context.Background(), ModeQuick, 6)
	require.NoError(t, err)
	assert.Len(t, qs, 6)

	qs, err = svc.Questions(context.Background(), ModeCEFR, 0)
	require.NoError(t, err)
	assert.Len(t, qs, 15, "only A1, B1 and C1 have questions, five each")
}

func TestQuestions_Errors(t *testing.T) {
	svc := NewEnglishTestService(store.NewStaticStoreFromDataset(&store.Dataset{}))

	_, err := svc.Questions(context.Background(), ModeQuick, 0)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = svc.Questions(context.Background(), "long", 0)
	var in *InputError
	assert.ErrorAs(t, err, &in)

	_, err = svc.Questions(context.Background(), ModeQuick, 61)
	assert.ErrorAs(t, err, &in)
}

func TestGrade_BeginnerPlacement(t *testing.T) {
	svc := NewEnglishTestService(testStore())

	answers := answersFor("Beginner", 3, " right ")
	answers = append(answersFor("Intermediate", 3, "wrong1"), answers...)

	res, err := svc.Grade(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Total)
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 50.0, res.Score)
	assert.Equal(t, "Beginner", res.EstimatedLevel.Quick3)
	assert.Equal(t, "A1", res.EstimatedLevel.CEFR6)
	assert.Equal(t, 3, res.Meta.QuickSeen["Beginner"])
	assert.Equal(t, 0, res.Meta.QuickCorrect["Intermediate"])
	assert.Equal(t, 0, res.Meta.QuickSeen["Advanced"])
	assert.Contains(t, res.Feedback, "Keep going")

	require.Len(t, res.Details, 6)
	require.NotNil(t, res.Details[3].Quick3)
	assert.Equal(t, "Beginner", *res.Details[3].Quick3)
	assert.True(t, res.Details[3].IsCorrect, "surrounding spaces are ignored")
}

func TestGrade_CaseSensitive(t *testing.T) {
	svc := NewEnglishTestService(testStore())

	res, err := svc.Grade(context.Background(), []models.Answer{{QID: "Beginner-0", Selected: "Right"}})
	require.NoError(t, err)
	assert.False(t, res.Details[0].IsCorrect)
	assert.Equal(t, placement.LevelUndetermined.Label(), res.EstimatedLevel.Quick3)
}

func TestGrade_AdvancedAndFeedback(t *testing.T) {
	svc := NewEnglishTestService(testStore())

	var answers []models.Answer
	answers = append(answers, answersFor("Intermediate", 4, "right")...)
	answers = append(answers, answersFor("Advanced", 4, "right")...)
	answers = append(answers, answersFor("Beginner", 1, "wrong1")...)

	res, err := svc.Grade(context.Background(), answers)
	require.NoError(t, err)
	assert.Equal(t, "Advanced", res.EstimatedLevel.Quick3)
	assert.Equal(t, 88.9, res.Score)
	assert.Contains(t, res.Feedback, "Excellent")
}

func TestGrade_InvalidInput(t *testing.T) {
	svc := NewEnglishTestService(testStore())
	var in *InputError

	_, err := svc.Grade(context.Background(), nil)
	require.ErrorAs(t, err, &in)
	assert.Equal(t, "No answers submitted", in.Detail)

	_, err = svc.Grade(context.Background(), []models.Answer{{QID: "nope", Selected: "x"}})
	require.ErrorAs(t, err, &in)
	assert.Equal(t, "Invalid question id: nope", in.Detail)
}

func TestPlacementFromDetails(t *testing.T) {
	svc := NewEnglishTestService(testStore())
	beg := "Beginner"
	var details []models.GradeDetail
	for i := 0; i < 3; i++ {
		details = append(details, models.GradeDetail{ID: "x", IsCorrect: true, Quick3: &beg})
	}
	details = append(details, models.GradeDetail{ID: "no-band", IsCorrect: true})

	res := svc.Placement(details)
	assert.Equal(t, placement.LevelBeginner, res.Level)
	assert.Equal(t, 3, res.ServedCounts[placement.Beginner])
}

func TestPlacementFromDetails_IgnoresNonCanonicalBands(t *testing.T) {
	svc := NewEnglishTestService(testStore())
	var details []models.GradeDetail
	for _, label := range []string{"beginner (low confidence)", "beginner", "Beginner+", "intermediate-ish", "Advanced "} {
		band := label
		for i := 0; i < 3; i++ {
			details = append(details, models.GradeDetail{ID: "x", IsCorrect: true, Quick3: &band})
		}
	}

	res := svc.Placement(details)
	assert.Equal(t, placement.LevelUndetermined, res.Level)
	assert.Equal(t, 0, res.ServedCounts[placement.Beginner])
	assert.Equal(t, 0, res.ServedCounts[placement.Intermediate])
	assert.Equal(t, 0, res.ServedCounts[placement.Advanced])
}
