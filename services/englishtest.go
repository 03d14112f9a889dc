package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"aasaasi/models"
	"aasaasi/placement"
	"aasaasi/store"
)

const (
	ModeQuick = "quick"
	ModeCEFR  = "cefr"

	quickPerBand = 4
	cefrPerBand  = 6
	maxTotal     = 60
)

type EnglishTestService struct {
	questions store.QuestionStore
}

func NewEnglishTestService(questions store.QuestionStore) *EnglishTestService {
	return &EnglishTestService{questions: questions}
}

// Questions samples a test. Quick mode draws evenly from the three broad
// bands, cefr mode from A1..C1. total 0 keeps the per-band defaults.
func (s *EnglishTestService) Questions(ctx context.Context, mode string, total int) ([]models.ClientQuestion, error) {
	if total < 0 || total > maxTotal {
		return nil, invalid(fmt.Sprintf("total must be between 0 and %d", maxTotal))
	}

	type draw struct {
		filter store.QuestionFilter
		n      int
	}
	var draws []draw

	switch mode {
	case "", ModeQuick:
		per := quickPerBand
		if total > 0 {
			per = max(1, total/len(placement.Bands))
		}
		for _, b := range placement.Bands {
			draws = append(draws, draw{store.QuestionFilter{Field: "quick3", Pattern: "^" + string(b) + "$"}, per})
		}
	case ModeCEFR:
		per := cefrPerBand
		if total > 0 {
			per = max(1, total/len(placement.CEFRBands))
		}
		for _, b := range placement.CEFRBands {
			draws = append(draws, draw{store.QuestionFilter{Field: "level6", Pattern: placement.CEFRPatterns[b]}, per})
		}
	default:
		return nil, invalid("mode must be quick or cefr")
	}

	var out []models.ClientQuestion
	for _, d := range draws {
		docs, err := s.questions.SampleQuestions(ctx, d.filter, d.n)
		if err != nil {
			return nil, fmt.Errorf("sample questions: %w", err)
		}
		for _, q := range docs {
			opts := q.Options()
			rand.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
			out = append(out, models.ClientQuestion{ID: q.ID, Question: q.Question, Options: opts})
		}
	}
	if len(out) == 0 {
		return nil, notFound("No questions found")
	}

	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

// Grade scores submitted answers. An answer is correct when the trimmed
// selection equals the trimmed stored answer, case included.
func (s *EnglishTestService) Grade(ctx context.Context, answers []models.Answer) (*models.GradeResult, error) {
	if len(answers) == 0 {
		return nil, invalid("No answers submitted")
	}

	ids := make([]string, len(answers))
	for i, a := range answers {
		ids[i] = a.QID
	}
	byID, err := s.questions.QuestionsByID(ctx, ids)
	var badID *store.InvalidIDError
	if errors.As(err, &badID) {
		return nil, invalid(fmt.Sprintf("Invalid question id: %s", badID.ID))
	}
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	meta := models.GradeMeta{
		QuickSeen:    bandCounts(),
		QuickCorrect: bandCounts(),
		CEFRSeen:     cefrCounts(),
		CEFRCorrect:  cefrCounts(),
	}

	var (
		correct int
		details = make([]models.GradeDetail, 0, len(answers))
	)
	for _, a := range answers {
		q, ok := byID[a.QID]
		if !ok {
			return nil, invalid(fmt.Sprintf("Invalid question id: %s", a.QID))
		}

		isCorrect := strings.TrimSpace(a.Selected) == strings.TrimSpace(q.Correct)
		if isCorrect {
			correct++
		}

		d := models.GradeDetail{
			ID:        q.ID,
			Question:  q.Question,
			Selected:  a.Selected,
			Correct:   q.Correct,
			IsCorrect: isCorrect,
		}
		if band, ok := placement.NormalizeBand(q.Quick3); ok {
			name := string(band)
			d.Quick3 = &name
			meta.QuickSeen[name]++
			if isCorrect {
				meta.QuickCorrect[name]++
			}
		}
		if level, ok := placement.NormalizeCEFR(q.Level6); ok {
			d.Level6 = &level
			meta.CEFRSeen[level]++
			if isCorrect {
				meta.CEFRCorrect[level]++
			}
		}
		details = append(details, d)
	}

	score := math.Round(1000*float64(correct)/float64(len(answers))) / 10
	quick := placement.Estimate(GradedItems(details))

	return &models.GradeResult{
		Score:   score,
		Correct: correct,
		Total:   len(answers),
		EstimatedLevel: models.EstimatedLevel{
			Quick3: quick.Level.Label(),
			CEFR6:  placement.PlaceCEFR(meta.CEFRCorrect, meta.CEFRSeen),
		},
		Feedback: feedback(score),
		Details:  details,
		Meta:     meta,
	}, nil
}

// Placement runs the estimator over details from an earlier grading.
func (s *EnglishTestService) Placement(details []models.GradeDetail) placement.Result {
	return placement.Estimate(GradedItems(details))
}

// GradedItems converts grading details into estimator input. quick3 is
// taken verbatim; anything but an exact band name is ignored by Estimate.
func GradedItems(details []models.GradeDetail) []placement.GradedItem {
	items := make([]placement.GradedItem, 0, len(details))
	for _, d := range details {
		it := placement.GradedItem{
			ID:             d.ID,
			Question:       d.Question,
			SelectedAnswer: d.Selected,
			CorrectAnswer:  d.Correct,
			IsCorrect:      d.IsCorrect,
		}
		if d.Quick3 != nil {
			it.Band = placement.Band(*d.Quick3)
		}
		items = append(items, it)
	}
	return items
}

func feedback(score float64) string {
	switch {
	case score >= 85:
		return "Excellent work! Your answers suggest strong command of the material."
	case score >= 60:
		return "Good job. Review the questions you missed and practice similar items."
	}
	return "Keep going! Focus on the topics you missed and try again."
}

func bandCounts() map[string]int {
	m := make(map[string]int, len(placement.Bands))
	for _, b := range placement.Bands {
		m[string(b)] = 0
	}
	return m
}

func cefrCounts() map[string]int {
	m := make(map[string]int, len(placement.CEFRBands))
	for _, b := range placement.CEFRBands {
		m[b] = 0
	}
	return m
}
