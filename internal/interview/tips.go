package interview

// Tip tiers keyed by mean score. Two universal tips are always appended.
var (
	tipsLow = []string{
		"Focus on using the STAR method (Situation, Task, Action, Result) for behavioral questions",
		"Provide specific examples from your experience rather than general statements",
		"Take time to structure your thoughts before answering",
		"Include measurable outcomes and data in your responses when possible",
	}
	tipsMid = []string{
		"Continue using the STAR method and add more specific metrics",
		"Demonstrate deeper reflection on leadership challenges",
		"Connect your experiences to education leadership best practices",
		"Practice articulating your educational philosophy more clearly",
	}
	tipsHigh = []string{
		"Excellent work! You're demonstrating strong interview skills",
		"Continue refining your responses with even more specific examples",
		"Practice responding to unexpected or challenging follow-up questions",
		"Consider how to connect your experiences to the specific school/district context",
	}
	tipsUniversal = []string{
		"Practice out loud to improve fluency and confidence",
		"Research the school/district before the interview",
	}
)

// TipsForScore selects the tips bundle for a mean score: below 6, below
// 8, or 8 and above, plus the two universal tips.
func TipsForScore(mean float64) []string {
	var tier []string
	switch {
	case mean < 6:
		tier = tipsLow
	case mean < 8:
		tier = tipsMid
	default:
		tier = tipsHigh
	}

	tips := make([]string, 0, len(tier)+len(tipsUniversal))
	tips = append(tips, tier...)
	tips = append(tips, tipsUniversal...)
	return tips
}
