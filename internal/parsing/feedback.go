// Package parsing extracts structured interview data from loosely
// formatted AI text: graded feedback from labeled sections and question
// lists from numbered lines. Every extraction has a total fallback, so
// malformed output degrades quality instead of failing the caller.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// Feedback is the graded evaluation of one interview answer.
type Feedback struct {
	Score       int
	Text        string
	Suggestions string
	// Followup is empty when the grader did not pose one.
	Followup string
}

// Labeled sections run from their label to the next recognized label or
// end of text. Matching is case-insensitive and spans newlines.
var (
	scoreRe       = regexp.MustCompile(`(?i)SCORE:\s*(\d+)`)
	feedbackRe    = regexp.MustCompile(`(?is)FEEDBACK:\s*(.*?)(?:SUGGESTIONS:|$)`)
	suggestionsRe = regexp.MustCompile(`(?is)SUGGESTIONS:\s*(.*?)(?:FOLLOWUP:|$)`)
	followupRe    = regexp.MustCompile(`(?is)FOLLOWUP:\s*(.*)$`)
)

const defaultFeedbackText = "Your answer has been reviewed."

// ParseFeedback extracts the labeled sections from a grading response.
// The score is clamped to [1,10] and defaults to 5 when absent; missing
// feedback text gets a generic placeholder. It returns a *ParseError only
// when the response carries none of the recognized labels at all, in
// which case the caller should grade heuristically via HeuristicFeedback.
func ParseFeedback(raw string) (Feedback, error) {
	scoreMatch := scoreRe.FindStringSubmatch(raw)
	feedbackMatch := feedbackRe.FindStringSubmatch(raw)
	suggestionsMatch := suggestionsRe.FindStringSubmatch(raw)
	followupMatch := followupRe.FindStringSubmatch(raw)

	if scoreMatch == nil && feedbackMatch == nil && suggestionsMatch == nil && followupMatch == nil {
		return Feedback{}, &ParseError{Message: "no labeled sections in grading response"}
	}

	fb := Feedback{
		Score: 5,
		Text:  defaultFeedbackText,
	}
	if scoreMatch != nil {
		n, err := strconv.Atoi(scoreMatch[1])
		if err == nil {
			fb.Score = clampScore(n)
		}
	}
	if feedbackMatch != nil && strings.TrimSpace(feedbackMatch[1]) != "" {
		fb.Text = strings.TrimSpace(feedbackMatch[1])
	}
	if suggestionsMatch != nil {
		fb.Suggestions = strings.TrimSpace(suggestionsMatch[1])
	}
	if followupMatch != nil {
		fb.Followup = strings.TrimSpace(followupMatch[1])
	}
	return fb, nil
}

var (
	starRe    = regexp.MustCompile(`(?i)situation|task|action|result`)
	metricsRe = regexp.MustCompile(`(?i)\d+%|\d+ students|\d+ teachers|\d+ years`)
)

// HeuristicFeedback grades an answer without AI output: a base score from
// answer length (>100 words scores 7, >50 scores 6, else 5), +1 for
// STAR-method keywords, +1 for metric patterns, capped at 10. The
// narrative text is fixed. The result is always a valid Feedback.
func HeuristicFeedback(answer string) Feedback {
	wordCount := len(strings.Fields(answer))

	score := 5
	switch {
	case wordCount > 100:
		score = 7
	case wordCount > 50:
		score = 6
	}
	if starRe.MatchString(answer) {
		score++
	}
	if metricsRe.MatchString(answer) {
		score++
	}
	if score > 10 {
		score = 10
	}

	return Feedback{
		Score: score,
		Text: "Good effort! Your answer demonstrates understanding of the question. " +
			"Consider using the STAR method (Situation, Task, Action, Result) and including " +
			"specific examples with measurable outcomes to strengthen your response.",
		Suggestions: "• Structure your answer using STAR method\n" +
			"• Include specific examples from your experience\n" +
			"• Add quantifiable results and metrics\n" +
			"• Demonstrate leadership qualities more explicitly",
		Followup: "Can you provide a specific example of when you applied this in your role?",
	}
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
