package interview

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the completion report for a finished session.
type Summary struct {
	Role      string    `json:"role"`
	Level     string    `json:"level"`
	MeanScore float64   `json:"meanScore"`
	Answers   []Answer  `json:"answers"`
	Tips      []string  `json:"tips"`
	Date      time.Time `json:"date"`
}

// NewSummary builds the report for a completed session.
func NewSummary(s *Session, now time.Time) *Summary {
	return &Summary{
		Role:      s.Role,
		Level:     s.Level,
		MeanScore: s.MeanScore(),
		Answers:   s.Answers,
		Tips:      TipsForScore(s.MeanScore()),
		Date:      now,
	}
}

// Text renders the downloadable plain-text report.
func (sum *Summary) Text() string {
	var sb strings.Builder

	sb.WriteString("Interview Practice Summary\n")
	fmt.Fprintf(&sb, "Role: %s\n", sum.Role)
	fmt.Fprintf(&sb, "Level: %s\n", sum.Level)
	fmt.Fprintf(&sb, "Date: %s\n", sum.Date.Format("1/2/2006"))
	sb.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&sb, "Overall Score: %.1f/10\n\n", sum.MeanScore)

	for i, answer := range sum.Answers {
		fmt.Fprintf(&sb, "Question %d: %s\n", i+1, answer.Question)
		fmt.Fprintf(&sb, "Your Answer: %s\n", answer.Answer)
		fmt.Fprintf(&sb, "Score: %d/10\n", answer.Score)
		fmt.Fprintf(&sb, "Feedback: %s\n", answer.Feedback)
		sb.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	}

	return sb.String()
}

// Filename is the suggested download name for the report.
func (sum *Summary) Filename() string {
	return fmt.Sprintf("Interview_Summary_%s_%s.txt", sum.Role, sum.Date.Format("2006-01-02"))
}
