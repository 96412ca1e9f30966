package resume

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnknownTemplate indicates a template name with no catalog entry.
var ErrUnknownTemplate = errors.New("unknown template")

// Template is a pre-filled starting point for one role.
type Template struct {
	Title          string
	Summary        string
	Experience     []Experience
	Education      []Education
	Skills         []string
	Certifications []Certification
}

var templates = map[string]Template{
	"principal": {
		Title: "Principal",
		Summary: "Experienced educational leader with 10+ years driving academic excellence and " +
			"fostering inclusive school communities. Proven track record of implementing innovative " +
			"curriculum strategies, developing high-performing teaching teams, and building strong " +
			"partnerships with families and community stakeholders.",
		Experience: []Experience{{
			Title:        "Principal",
			Organization: "Lincoln High School",
			Location:     "Los Angeles, CA",
			StartDate:    "2018",
			EndDate:      "Present",
			Bullets: []string{
				"Led school of 1,200+ students to achieve 25% increase in standardized test scores over 3 years",
				"Implemented data-driven instructional strategies resulting in 15% improvement in graduation rates",
				"Developed and managed $3M annual budget while maintaining fiscal responsibility",
				"Cultivated positive school culture through restorative justice practices, reducing disciplinary incidents by 30%",
			},
		}},
		Education: []Education{{
			Degree:      "Ed.D. in Educational Leadership",
			Institution: "University of California",
			Location:    "Los Angeles, CA",
			Year:        "2015",
		}},
		Skills: []string{
			"Curriculum Development", "Budget Management", "Team Leadership", "Data Analysis",
			"Community Engagement", "Strategic Planning", "Staff Development", "Parent Communication",
		},
		Certifications: []Certification{{
			Name:   "Administrative Services Credential",
			Issuer: "California Commission on Teacher Credentialing",
			Year:   "2016",
		}},
	},
	"vice-principal": {
		Title: "Vice-Principal",
		Summary: "Dynamic education administrator with 8+ years of experience supporting school " +
			"operations and student success. Skilled in instructional leadership, student discipline, " +
			"and collaborative problem-solving. Committed to creating equitable learning environments " +
			"where all students thrive.",
		Experience: []Experience{{
			Title:        "Assistant Principal",
			Organization: "Washington Middle School",
			Location:     "San Diego, CA",
			StartDate:    "2019",
			EndDate:      "Present",
			Bullets: []string{
				"Supervised instructional programs for 800+ students across grades 6-8",
				"Coordinated professional development for 50+ teachers, focusing on differentiated instruction",
				"Managed student discipline and behavioral interventions, implementing positive behavior support systems",
				"Led school safety initiatives and crisis response protocols",
			},
		}},
		Education: []Education{{
			Degree:      "M.A. in Educational Administration",
			Institution: "San Diego State University",
			Location:    "San Diego, CA",
			Year:        "2017",
		}},
		Skills: []string{
			"Instructional Leadership", "Student Discipline", "Teacher Evaluation", "Crisis Management",
			"IEP Coordination", "Parent Relations", "School Safety", "Professional Development",
		},
		Certifications: []Certification{{
			Name:   "Administrative Services Credential",
			Issuer: "California Commission on Teacher Credentialing",
			Year:   "2018",
		}},
	},
	"superintendent": {
		Title: "Superintendent",
		Summary: "Visionary education executive with 15+ years of leadership experience transforming " +
			"school districts. Expert in strategic planning, policy development, and stakeholder " +
			"engagement. Proven ability to drive systemic change while ensuring equitable outcomes " +
			"for all students.",
		Experience: []Experience{{
			Title:        "Superintendent",
			Organization: "Unified School District",
			Location:     "Sacramento, CA",
			StartDate:    "2020",
			EndDate:      "Present",
			Bullets: []string{
				"Led district of 12,000+ students, overseeing 15 schools and 1,000+ staff members",
				"Developed and executed 5-year strategic plan focused on equity, innovation, and academic excellence",
				"Managed $150M annual budget with transparent fiscal stewardship",
				"Strengthened board relations and community partnerships through effective communication and collaboration",
				"Championed diversity, equity, and inclusion initiatives resulting in improved outcomes for underserved students",
			},
		}},
		Education: []Education{{
			Degree:      "Ed.D. in Educational Leadership",
			Institution: "Stanford University",
			Location:    "Stanford, CA",
			Year:        "2012",
		}},
		Skills: []string{
			"Strategic Planning", "Policy Development", "Board Relations", "Budget Management",
			"Equity & Inclusion", "Change Management", "Community Engagement",
			"Organizational Leadership", "Data-Driven Decision Making",
		},
		Certifications: []Certification{{
			Name:   "Superintendent Credential",
			Issuer: "California Commission on Teacher Credentialing",
			Year:   "2019",
		}},
	},
}

// TemplateNames lists the available template identifiers.
func TemplateNames() []string {
	return []string{"principal", "vice-principal", "superintendent"}
}

// ApplyTemplate overwrites the document's title, summary, experience,
// education, skills, and certifications with the named template's
// content. Entry IDs are assigned fresh. Contact fields other than title
// are preserved.
func (d *Document) ApplyTemplate(name string) error {
	tpl, ok := templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	d.Template = name
	d.Personal.Title = tpl.Title
	d.Summary = tpl.Summary

	d.Experience = make([]Experience, len(tpl.Experience))
	for i, exp := range tpl.Experience {
		exp.ID = uuid.New()
		exp.Bullets = append([]string(nil), exp.Bullets...)
		d.Experience[i] = exp
	}
	d.Education = make([]Education, len(tpl.Education))
	for i, edu := range tpl.Education {
		edu.ID = uuid.New()
		d.Education[i] = edu
	}
	d.Skills = append([]string(nil), tpl.Skills...)
	d.Certifications = make([]Certification, len(tpl.Certifications))
	for i, cert := range tpl.Certifications {
		cert.ID = uuid.New()
		d.Certifications[i] = cert
	}
	return nil
}
