package gateway

import "strings"

// cannedCategory is one statically authored response with the keywords that
// select it. Categories are checked in order; the first keyword hit wins.
type cannedCategory struct {
	name     string
	keywords []string
	response string
}

var cannedCategories = []cannedCategory{
	{
		name:     "interview",
		keywords: []string{"interview", "question", "ask", "prepare"},
		response: `**Common Principal Interview Questions:**

- **Leadership Philosophy**: "Describe your leadership style and philosophy as a principal."

- **Change Management**: "Tell me about a time you implemented a significant change at your school."

- **Conflict Resolution**: "How do you handle conflict between staff members or with parents?"

- **Data-Driven**: "How do you use data to improve student outcomes?"

- **Teacher Development**: "Describe your approach to supporting and developing teachers."

**Tip**: Use the **STAR method** for behavioral questions:
- **S**ituation: Set the context
- **T**ask: Explain your responsibility
- **A**ction: Describe what you did
- **R**esult: Share the outcome with metrics

Try our Interview Practice module for AI-scored feedback!`,
	},
	{
		name:     "resume",
		keywords: []string{"resume", "cv", "write", "summary", "experience"},
		response: `**Resume Tips for Education Leaders:**

- **Strong Summary**: 3-5 sentences highlighting years of experience, key achievements, and leadership philosophy

- **Quantify Results**: Use numbers and metrics (e.g., "Improved graduation rates by 15%", "Led team of 50+ teachers")

- **Action Verbs**: Start bullets with: Led, Implemented, Developed, Achieved, Transformed

- **Leadership Focus**: Emphasize team building, change management, data-driven decisions

- **Education Section**: List highest degree first, include credential information

Try our Resume Builder with pre-filled templates and AI suggestions!`,
	},
	{
		name:     "credentials",
		keywords: []string{"credential", "license", "requirement", "certification"},
		response: `**Administrative Services Credential (California):**

**Prerequisites:**
- Valid teaching credential
- 5+ years of successful teaching experience
- Bachelor's degree

**Program Requirements:**
- Complete approved credential program (university or district-based)
- Pass CPACE exam (California Preliminary Administrative Credential Examination)
- Complete leadership coursework and fieldwork

**Timeline**: Typically 1-2 years

**After Preliminary Credential:**
- Complete 2-year induction program
- Advance to Clear Administrative Services Credential

Visit the CTC website (ctc.ca.gov) for official requirements.`,
	},
	{
		name:     "leadership",
		keywords: []string{"leadership", "style", "manage", "lead"},
		response: `**Effective Leadership Styles for Principals:**

- **Instructional Leadership**: Focus on teaching and learning, classroom observations, professional development

- **Transformational**: Inspire and motivate, build shared vision, empower teachers

- **Distributed Leadership**: Share decision-making, build leadership capacity in others

- **Equity-Centered**: Prioritize closing opportunity gaps, culturally responsive practices

**Key Practices:**
- Build relationships and trust
- Communicate vision clearly
- Use data for decisions
- Support teacher growth
- Engage families and community

**Best Approach**: Adapt your style to context and needs!`,
	},
	{
		name:     "salary",
		keywords: []string{"salary", "pay", "compensation", "earn"},
		response: `**Education Leadership Salary Ranges (California):**

**Vice-Principal/Assistant Principal:**
- $90,000 - $130,000/year
- Varies by district size and location

**Principal:**
- Elementary: $110,000 - $150,000
- Middle School: $115,000 - $155,000
- High School: $120,000 - $170,000

**Superintendent:**
- Small District: $140,000 - $200,000
- Medium District: $180,000 - $250,000
- Large District: $220,000 - $350,000+

**Factors Affecting Salary:**
- District size and budget
- Location (urban vs rural)
- Experience level
- Additional responsibilities

Salaries typically higher in Bay Area, LA, San Diego.`,
	},
	{
		name:     "career",
		keywords: []string{"career", "path", "become", "transition", "move"},
		response: `**Career Path to Principal:**

**Step 1: Teaching (5+ years)**
- Build classroom expertise
- Take on leadership roles (department chair, coach, committee lead)

**Step 2: Administrative Credential (1-2 years)**
- Enroll in credential program while teaching
- Complete coursework and fieldwork
- Pass CPACE exam

**Step 3: Entry Leadership Role**
- Assistant Principal or Dean position
- Gain experience with operations, discipline, scheduling

**Step 4: Principal**
- Apply for principal positions
- Typically need 2-3 years as AP
- Consider starting at smaller school

**Timeline**: 7-10 years from teacher to principal

**Accelerate**: Take on leadership roles early, network with administrators, get a mentor!`,
	},
}

// defaultCannedResponse is returned when no category keyword matches.
const defaultCannedResponse = `I can help you with:

- **Interview preparation** - Common questions and STAR method
- **Resume writing** - Templates and tips for education leaders
- **Credentials** - Requirements for administrative credentials
- **Leadership styles** - Effective approaches for principals
- **Career paths** - Steps to become a principal or superintendent
- **Salary information** - Typical ranges for education leaders

What specific topic would you like to know more about?

You can also use our Resume Builder and Interview Practice tools!`

// CannedResponse returns the statically authored answer for a prompt.
// Matching is case-insensitive substring search over the category keyword
// sets; the first matching category wins.
func CannedResponse(prompt string) string {
	lower := strings.ToLower(prompt)

	for _, category := range cannedCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return category.response
			}
		}
	}

	return defaultCannedResponse
}
