package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipsForScore(t *testing.T) {
	tests := []struct {
		name  string
		mean  float64
		first string
	}{
		{"low tier below 6", 5.9, "Focus on using the STAR method (Situation, Task, Action, Result) for behavioral questions"},
		{"mid tier at 6", 6.0, "Continue using the STAR method and add more specific metrics"},
		{"mid tier below 8", 7.9, "Continue using the STAR method and add more specific metrics"},
		{"high tier at 8", 8.0, "Excellent work! You're demonstrating strong interview skills"},
		{"high tier at 10", 10, "Excellent work! You're demonstrating strong interview skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tips := TipsForScore(tt.mean)
			require.Len(t, tips, 6, "four tier tips plus two universal")
			assert.Equal(t, tt.first, tips[0])
			assert.Equal(t, "Practice out loud to improve fluency and confidence", tips[4])
			assert.Equal(t, "Research the school/district before the interview", tips[5])
		})
	}
}
