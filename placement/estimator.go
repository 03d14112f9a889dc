package placement

import "math"

const (
	minSample = 3
	passRatio = 0.75
)

// Band is the coarse difficulty tag attached to a quiz item.
type Band string

const (
	Beginner     Band = "Beginner"
	Intermediate Band = "Intermediate"
	Advanced     Band = "Advanced"
)

// Bands lists the quick-placement bands from lowest to highest.
var Bands = []Band{Beginner, Intermediate, Advanced}

// Valid reports whether b is one of the three known bands.
func (b Band) Valid() bool {
	switch b {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Level is the estimated overall placement.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelUndetermined Level = "undetermined"
)

// Label is the display form of the level; undetermined renders as "—".
func (l Level) Label() string {
	if l == LevelUndetermined || l == "" {
		return "—"
	}
	return string(l)
}

// GradedItem is one graded quiz question.
type GradedItem struct {
	ID             string `json:"id"`
	Question       string `json:"question"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Band           Band   `json:"band,omitempty"`
}

// Result is the placement for a single attempt.
type Result struct {
	Level         Level        `json:"level"`
	ServedCounts  map[Band]int `json:"servedCounts"`
	CorrectCounts map[Band]int `json:"correctCounts"`
}

// Passes reports whether a band with the given tallies clears the gate:
// at least three items served and max(3, ceil(75%)) of them correct.
func Passes(served, correct int) bool {
	if served < minSample {
		return false
	}
	need := int(math.Ceil(passRatio * float64(served)))
	if need < minSample {
		need = minSample
	}
	return correct >= need
}

// Estimate places a learner from one attempt. Items whose band is not one
// of the known bands are ignored. A higher band only counts when the band
// below it passes too.
func Estimate(items []GradedItem) Result {
	served := make(map[Band]int, len(Bands))
	correct := make(map[Band]int, len(Bands))
	for _, b := range Bands {
		served[b] = 0
		correct[b] = 0
	}

	for _, it := range items {
		if !it.Band.Valid() {
			continue
		}
		served[it.Band]++
		if it.IsCorrect {
			correct[it.Band]++
		}
	}

	passes := func(b Band) bool { return Passes(served[b], correct[b]) }

	level := LevelUndetermined
	switch {
	case passes(Advanced) && passes(Intermediate):
		level = LevelAdvanced
	case passes(Intermediate) && passes(Beginner):
		level = LevelIntermediate
	case passes(Beginner):
		level = LevelBeginner
	}

	return Result{Level: level, ServedCounts: served, CorrectCounts: correct}
}
