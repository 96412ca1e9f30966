package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryText(t *testing.T) {
	s := newTestSession("Q1", "Q2")
	s.Answers = []Answer{
		{Question: "Q1", Answer: "My answer", Feedback: "Well structured.", Score: 8},
		{Question: "Q2", Answer: SkippedAnswer, Feedback: "Question skipped", Score: 0},
	}
	s.CurrentQuestionIndex = 2

	sum := NewSummary(s, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))
	text := sum.Text()

	assert.Contains(t, text, "Interview Practice Summary")
	assert.Contains(t, text, "Role: Principal")
	assert.Contains(t, text, "Level: Elementary")
	assert.Contains(t, text, "Date: 3/9/2026")
	assert.Contains(t, text, "Overall Score: 4.0/10")
	assert.Contains(t, text, "Question 1: Q1")
	assert.Contains(t, text, "Your Answer: My answer")
	assert.Contains(t, text, "Score: 8/10")
	assert.Contains(t, text, "Question 2: Q2")
	assert.Contains(t, text, "Your Answer: [Skipped]")
}

func TestSummaryTipsMatchMean(t *testing.T) {
	s := newTestSession("Q1")
	s.Answers = []Answer{{Question: "Q1", Score: 9}}
	s.CurrentQuestionIndex = 1

	sum := NewSummary(s, time.Now())
	assert.Equal(t, 9.0, sum.MeanScore)
	assert.Equal(t, TipsForScore(9.0), sum.Tips)
}

func TestSummaryFilename(t *testing.T) {
	sum := &Summary{Role: "Superintendent", Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Interview_Summary_Superintendent_2026-03-09.txt", sum.Filename())
}
