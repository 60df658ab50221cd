package dateutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthsFromYears(t *testing.T) {
	tests := []struct {
		name     string
		years    float64
		expected int
	}{
		{"zero", 0, 0},
		{"whole years", 30, 360},
		{"fraction rounds down", 1.05, 12},
		{"half year", 2.5, 30},
		{"negative", -3, 0},
		{"NaN", math.NaN(), 0},
		{"positive infinity saturates", math.Inf(1), math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsFromYears(tt.years))
		})
	}
}

func TestCompletedYears(t *testing.T) {
	assert.Equal(t, 0, CompletedYears(-5))
	assert.Equal(t, 0, CompletedYears(11))
	assert.Equal(t, 1, CompletedYears(12))
	assert.Equal(t, 2, CompletedYears(30))
}

func TestMonthsBetweenAges(t *testing.T) {
	assert.Equal(t, 144, MonthsBetweenAges(6, 18))
	assert.Equal(t, 588, MonthsBetweenAges(18, 67))
	assert.Equal(t, 0, MonthsBetweenAges(18, 18))
	assert.Equal(t, 0, MonthsBetweenAges(20, 18))
}

func TestYearAtAge(t *testing.T) {
	assert.Equal(t, 2026, YearAtAge(2020, 6))
	assert.Equal(t, 2038, YearAtAge(2020, 18))
}
