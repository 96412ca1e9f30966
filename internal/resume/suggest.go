package resume

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/acsaprep/preptool/internal/gateway"
	"github.com/acsaprep/preptool/internal/prompts"
)

var (
	// ErrTitleRequired blocks bullet suggestions for an untitled entry.
	ErrTitleRequired = errors.New("job title is required for suggestions")
	// ErrNoSuggestions indicates the AI output yielded nothing usable.
	ErrNoSuggestions = errors.New("could not generate suggestions")
)

const (
	maxSuggestedSkills = 10
	minSkillLength     = 2
	maxSkillLength     = 50
)

var (
	bulletLineRe   = regexp.MustCompile(`^\d+[.)]`)
	bulletPrefixRe = regexp.MustCompile(`^\d+[.)]\s*`)
	skillPrefixRe  = regexp.MustCompile(`^[-•*]\s*`)
)

// Suggester produces AI content suggestions for the builder. All calls
// go through the gateway, so unavailable AI degrades to canned text that
// simply fails the relevant parse.
type Suggester struct {
	gw gateway.Asker
}

// NewSuggester wires a Suggester over the gateway.
func NewSuggester(gw gateway.Asker) *Suggester {
	return &Suggester{gw: gw}
}

// suggestionRole picks the role mentioned in prompts: the stated title,
// else the applied template, else a generic default.
func suggestionRole(d *Document) string {
	if d.Personal.Title != "" {
		return d.Personal.Title
	}
	if d.Template != "" {
		return d.Template
	}
	return "education leader"
}

// Summary generates a professional summary for the document, folding in
// the most recent experience entry when one exists.
func (s *Suggester) Summary(ctx context.Context, d *Document) (string, error) {
	currentRole := ""
	if len(d.Experience) > 0 {
		org := d.Experience[0].Organization
		if org == "" {
			org = "School"
		}
		currentRole = fmt.Sprintf("Current role: %s at %s", d.Experience[0].Title, org)
	}

	prompt, err := prompts.Render("resume.json", "suggest-summary", map[string]string{
		"Role":        suggestionRole(d),
		"CurrentRole": currentRole,
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(s.gw.Ask(ctx, prompt))
	if summary == "" {
		return "", ErrNoSuggestions
	}
	return summary, nil
}

// Skills generates up to 10 skill suggestions: the response split on
// commas and newlines, bullet markers stripped, keeping entries between
// 3 and 49 characters.
func (s *Suggester) Skills(ctx context.Context, d *Document) ([]string, error) {
	prompt, err := prompts.Render("resume.json", "suggest-skills", map[string]string{
		"Role": suggestionRole(d),
	})
	if err != nil {
		return nil, err
	}

	raw := s.gw.Ask(ctx, prompt)
	var skills []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' }) {
		skill := skillPrefixRe.ReplaceAllString(strings.TrimSpace(part), "")
		if len(skill) > minSkillLength && len(skill) < maxSkillLength {
			skills = append(skills, skill)
		}
		if len(skills) == maxSuggestedSkills {
			break
		}
	}

	if len(skills) == 0 {
		return nil, ErrNoSuggestions
	}
	return skills, nil
}

// Bullets generates achievement bullets for one experience entry from a
// numbered-list response.
func (s *Suggester) Bullets(ctx context.Context, exp Experience) ([]string, error) {
	if exp.Title == "" {
		return nil, ErrTitleRequired
	}

	org := exp.Organization
	if org == "" {
		org = "School"
	}
	prompt, err := prompts.Render("resume.json", "suggest-bullets", map[string]string{
		"Title":        exp.Title,
		"Organization": org,
	})
	if err != nil {
		return nil, err
	}

	raw := s.gw.Ask(ctx, prompt)
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !bulletLineRe.MatchString(line) {
			continue
		}
		bullets = append(bullets, strings.TrimSpace(bulletPrefixRe.ReplaceAllString(line, "")))
	}

	if len(bullets) == 0 {
		return nil, ErrNoSuggestions
	}
	return bullets, nil
}
