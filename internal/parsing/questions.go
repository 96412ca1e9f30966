package parsing

import (
	"regexp"
	"strings"
)

// A usable generated set needs at least this many questions; shorter sets
// are abandoned in favor of the curated list.
const minGeneratedQuestions = 5

// maxQuestions caps how many generated questions one session uses.
const maxQuestions = 7

var (
	numberedLineRe   = regexp.MustCompile(`^\d+[.)]\s`)
	numberedPrefixRe = regexp.MustCompile(`^\d+[.)]\s*`)
)

// ParseQuestions extracts interview questions from a numbered-list
// response: lines matching `^\d+[.)]\s` with the prefix stripped, keeping
// only lines longer than 20 characters, capped at 7. Fewer than 5 valid
// questions is a *ParseError; the caller should substitute
// FallbackQuestions for the role.
func ParseQuestions(raw string) ([]string, error) {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !numberedLineRe.MatchString(line) {
			continue
		}
		question := strings.TrimSpace(numberedPrefixRe.ReplaceAllString(line, ""))
		if len(question) > 20 {
			questions = append(questions, question)
		}
	}

	if len(questions) < minGeneratedQuestions {
		return nil, &ParseError{Message: "insufficient questions generated"}
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions, nil
}

var fallbackQuestions = map[string][]string{
	"Principal": {
		"Describe your leadership philosophy and how it guides your decision-making as a principal.",
		"Tell me about a time when you had to implement a significant change at your school. How did you approach it?",
		"How would you handle a situation where a teacher is consistently underperforming despite coaching?",
		"Describe your approach to building positive relationships with families and the community.",
		"How do you use data to drive instructional improvements in your school?",
		"Tell me about a time when you had to manage a crisis or emergency situation.",
		"How do you support and develop teachers in your building?",
	},
	"Vice-Principal": {
		"Describe your experience with student discipline and behavior management.",
		"How do you support teachers in improving their instructional practice?",
		"Tell me about a time when you had to mediate a conflict between staff members.",
		"How would you approach coordinating a school-wide initiative or program?",
		"Describe your experience with special education and IEP processes.",
		"How do you balance administrative duties with instructional leadership?",
		"Tell me about a time when you had to make a difficult decision regarding student safety.",
	},
	"Superintendent": {
		"Describe your vision for leading a school district and ensuring equitable outcomes for all students.",
		"How do you build and maintain productive relationships with the school board?",
		"Tell me about your experience managing large budgets and making difficult financial decisions.",
		"How would you approach district-wide strategic planning and implementation?",
		"Describe a time when you led systemic change across multiple schools or departments.",
		"How do you engage families, community stakeholders, and partners in the district's work?",
		"What is your approach to recruiting, developing, and retaining high-quality principals and staff?",
	},
}

// FallbackQuestions returns the curated question set for a role.
// Unrecognized roles get the Principal set. The returned slice is a copy;
// callers may retain and mutate it.
func FallbackQuestions(role string) []string {
	set, ok := fallbackQuestions[role]
	if !ok {
		set = fallbackQuestions["Principal"]
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}
