package placement

import (
	"math"
	"strings"
)

// CEFR bands from lowest to highest.
var CEFRBands = []string{"A1", "A2", "B1", "B2", "C1"}

// cefrThreshold is the number of correct answers needed out of n.
// Floors and the A1..B1 cuts sit at 4/6, the B2 and C1 cuts at 5/6.
func cefrThreshold(n int, band string, floor bool) int {
	if n <= 0 {
		return math.MaxInt
	}
	ratio := 4.0 / 6.0
	if !floor && (band == "B2" || band == "C1") {
		ratio = 5.0 / 6.0
	}
	need := int(math.Ceil(ratio * float64(n)))
	if need < 1 {
		need = 1
	}
	return need
}

// PlaceCEFR returns the highest CEFR level whose own cut passes while every
// lower band clears its floor. C1 also requires the B2 cut. Defaults to A1.
func PlaceCEFR(correct, served map[string]int) string {
	ok := func(idx int) bool {
		level := CEFRBands[idx]
		if correct[level] < cefrThreshold(served[level], level, false) {
			return false
		}
		for _, b := range CEFRBands[:idx] {
			if correct[b] < cefrThreshold(served[b], b, true) {
				return false
			}
		}
		if level == "C1" && correct["B2"] < cefrThreshold(served["B2"], "B2", false) {
			return false
		}
		return true
	}

	for i := len(CEFRBands) - 1; i >= 0; i-- {
		if ok(i) {
			return CEFRBands[i]
		}
	}
	return "A1"
}

// NormalizeBand maps a raw quick3 label ("beginner", "Intermediate ",
// "adv") onto a Band. Unknown labels return false.
func NormalizeBand(raw string) (Band, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return "", false
	case strings.HasPrefix(s, "beg"):
		return Beginner, true
	case strings.HasPrefix(s, "int"):
		return Intermediate, true
	case strings.HasPrefix(s, "adv"):
		return Advanced, true
	}
	return "", false
}

// NormalizeCEFR maps a raw level6 label ("Pre-Intermediate", "b2",
// "Upper Intermediate") onto a CEFR band. Unknown labels return false.
func NormalizeCEFR(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	switch s {
	case "a1", "elementary":
		return "A1", true
	case "a2", "preintermediate", "preint":
		return "A2", true
	case "b1", "intermediate":
		return "B1", true
	case "b2", "upperintermediate", "upperint":
		return "B2", true
	case "c1", "advanced":
		return "C1", true
	}
	return "", false
}

// CEFRPatterns are case-insensitive regular expressions matching the raw
// level6 labels stored for each band.
var CEFRPatterns = map[string]string{
	"A1": `^(A1|Elementary)$`,
	"A2": `^(A2|Pre[- ]?Intermediate|Preintermediate)$`,
	"B1": `^(B1|Intermediate)$`,
	"B2": `^(B2|Upper[- ]?Intermediate|Upperintermediate)$`,
	"C1": `^(C1|Advanced)$`,
}
