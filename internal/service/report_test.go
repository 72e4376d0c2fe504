package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		name        string
		passed      int
		opportunity int
		exempted    int
		want        float64
	}{
		{"exemption shrinks denominator", 6, 10, 2, 75.0},
		{"all passed", 5, 5, 0, 100.0},
		{"rounded to one decimal", 2, 3, 0, 66.7},
		{"no opportunities", 0, 0, 0, 0},
		{"fully exempted", 0, 5, 5, 0},
		{"exempted beyond opportunity", 1, 3, 4, 0},
		{"one third", 1, 3, 0, 33.3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Percentage(tc.passed, tc.opportunity, tc.exempted))
		})
	}
}
