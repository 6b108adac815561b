package notification

import (
	"bytes"
	"html/template"
)

var letter = template.Must(template.New("letter").Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello {{.Name}},</p>
		{{range .Paragraphs}}<p>{{.}}</p>
		{{end}}<p>Best regards,<br>HR Team</p>
	</div>
</body>
</html>`))

// RenderLetter wraps plain paragraphs in the HR letter layout, escaping them.
func RenderLetter(name string, paragraphs ...string) string {
	var buf bytes.Buffer
	_ = letter.Execute(&buf, struct {
		Name       string
		Paragraphs []string
	}{Name: name, Paragraphs: paragraphs})
	return buf.String()
}
