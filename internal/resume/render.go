package resume

import (
	"fmt"
	"html/template"
	"strings"
)

// RenderError represents a preview rendering failure.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

var templateFuncs = template.FuncMap{
	"orPlaceholder": func(value, placeholder string) string {
		if value == "" {
			return placeholder
		}
		return value
	},
	"multiline": func(value string) template.HTML {
		escaped := template.HTMLEscapeString(value)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

const emptyPreview = `<div class="preview-empty"><p>Fill in your information to see the preview</p></div>`

var previewTemplate = template.Must(template.New("preview").Funcs(templateFuncs).Parse(`<div class="preview-header">
  <h1>{{orPlaceholder .Personal.FullName "[Your Name]"}}</h1>
  <p class="preview-title">{{orPlaceholder .Personal.Title "[Your Title]"}}</p>
  <div class="preview-contact">
    {{- if .Personal.Email}}<span>{{.Personal.Email}}</span>{{end}}
    {{- if .Personal.Phone}}<span>{{.Personal.Phone}}</span>{{end}}
    {{- if .Personal.Location}}<span>{{.Personal.Location}}</span>{{end}}
  </div>
</div>
{{- if .Summary}}
<div class="preview-section" id="summary">
  <h2>PROFESSIONAL SUMMARY</h2>
  <p>{{multiline .Summary}}</p>
</div>
{{- end}}
{{- if .Experience}}
<div class="preview-section" id="experience">
  <h2>PROFESSIONAL EXPERIENCE</h2>
  {{- range .Experience}}
  <div class="preview-entry">
    <h3>{{orPlaceholder .Title "[Title]"}}</h3>
    <span class="preview-dates">{{orPlaceholder .StartDate "[Start]"}} - {{orPlaceholder .EndDate "[End]"}}</span>
    <p class="preview-org">{{orPlaceholder .Organization "[Organization]"}}{{if .Location}} | {{.Location}}{{end}}</p>
    {{- if .Bullets}}
    <ul>
      {{- range .Bullets}}{{if .}}<li>{{.}}</li>{{end}}{{end}}
    </ul>
    {{- end}}
  </div>
  {{- end}}
</div>
{{- end}}
{{- if .Education}}
<div class="preview-section" id="education">
  <h2>EDUCATION</h2>
  {{- range .Education}}
  <div class="preview-entry">
    <h3>{{orPlaceholder .Degree "[Degree]"}}</h3>
    <span class="preview-dates">{{orPlaceholder .Year "[Year]"}}</span>
    <p class="preview-org">{{orPlaceholder .Institution "[Institution]"}}{{if .Location}} | {{.Location}}{{end}}</p>
  </div>
  {{- end}}
</div>
{{- end}}
{{- if .Skills}}
<div class="preview-section" id="skills">
  <h2>KEY SKILLS</h2>
  <div class="preview-skills">
    {{- range .Skills}}<span class="skill-chip">{{.}}</span>{{end}}
  </div>
</div>
{{- end}}
{{- if .Certifications}}
<div class="preview-section" id="certifications">
  <h2>CERTIFICATIONS</h2>
  {{- range .Certifications}}
  <div class="preview-entry">
    <p class="preview-cert">{{orPlaceholder .Name "[Certification]"}}</p>
    <span class="preview-dates">{{orPlaceholder .Year "[Year]"}}</span>
    {{- if .Issuer}}<p class="preview-issuer">{{.Issuer}}</p>{{end}}
  </div>
  {{- end}}
</div>
{{- end}}
`))

var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: letter; margin: 0.75in; }
  body { font-family: Georgia, serif; color: #1a1a2e; line-height: 1.45; }
  h1 { margin: 0; font-size: 24pt; }
  h2 { font-size: 13pt; border-bottom: 1px solid #999; padding-bottom: 2pt; margin: 14pt 0 6pt; }
  h3 { font-size: 11pt; margin: 8pt 0 2pt; }
  .preview-header { text-align: center; border-bottom: 3px solid #1a1a2e; padding-bottom: 8pt; }
  .preview-contact span { margin: 0 6pt; font-size: 9pt; }
  .preview-dates { float: right; font-size: 9pt; color: #555; }
  .preview-section { page-break-inside: avoid; }
  .skill-chip { display: inline-block; margin: 0 6pt 4pt 0; font-size: 10pt; }
  ul { margin: 2pt 0 6pt 14pt; padding: 0; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderPreview renders the on-screen preview of a document. Rendering
// is a pure function of document state; empty fields show bracketed
// placeholders, and a document with no name, summary, or experience
// renders the empty-state notice.
func RenderPreview(d *Document) (string, error) {
	if d.Personal.FullName == "" && d.Summary == "" && len(d.Experience) == 0 {
		return emptyPreview, nil
	}

	var sb strings.Builder
	if err := previewTemplate.Execute(&sb, d); err != nil {
		return "", &RenderError{Message: "failed to render preview", Cause: err}
	}
	return sb.String(), nil
}

// RenderExportHTML renders the full standalone page used for paginated
// PDF export, wrapping the preview body with print styling.
func RenderExportHTML(d *Document) (string, error) {
	body, err := RenderPreview(d)
	if err != nil {
		return "", err
	}

	title := d.Personal.FullName
	if title == "" {
		title = "Resume"
	}

	var sb strings.Builder
	err = exportTemplate.Execute(&sb, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return "", &RenderError{Message: "failed to render export page", Cause: err}
	}
	return sb.String(), nil
}
