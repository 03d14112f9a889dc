package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceCEFR(t *testing.T) {
	six := map[string]int{"A1": 6, "A2": 6, "B1": 6, "B2": 6, "C1": 6}

	tests := []struct {
		name    string
		correct map[string]int
		served  map[string]int
		want    string
	}{
		{"nothing served", map[string]int{}, map[string]int{}, "A1"},
		{"all perfect", map[string]int{"A1": 6, "A2": 6, "B1": 6, "B2": 6, "C1": 6}, six, "C1"},
		{"c1 needs b2 cut", map[string]int{"A1": 6, "A2": 6, "B1": 6, "B2": 4, "C1": 6}, six, "B1"},
		{"b2 at five of six", map[string]int{"A1": 4, "A2": 4, "B1": 4, "B2": 5, "C1": 0}, six, "B2"},
		{"floor below blocks", map[string]int{"A1": 3, "A2": 6, "B1": 6, "B2": 6, "C1": 6}, six, "A1"},
		{"a2 exactly at cut", map[string]int{"A1": 4, "A2": 4, "B1": 3}, six, "A2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaceCEFR(tt.correct, tt.served))
		})
	}
}

func TestNormalizeBand(t *testing.T) {
	tests := map[string]Band{
		"Beginner":       Beginner,
		" beginner ":     Beginner,
		"INTERMEDIATE":   Intermediate,
		"adv":            Advanced,
		"Advanced (C1)":  Advanced,
	}
	for raw, want := range tests {
		got, ok := NormalizeBand(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "expert", "A1"} {
		_, ok := NormalizeBand(raw)
		assert.False(t, ok, raw)
	}
}

func TestNormalizeCEFR(t *testing.T) {
	tests := map[string]string{
		"A1":                 "A1",
		"Elementary":         "A1",
		"Pre-Intermediate":   "A2",
		"b1":                 "B1",
		"Upper Intermediate": "B2",
		"advanced":           "C1",
	}
	for raw, want := range tests {
		got, ok := NormalizeCEFR(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeCEFR("C2")
	assert.False(t, ok)
}
