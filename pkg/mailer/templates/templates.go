// Package templates renders the transactional emails the worker sends.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to BookBuddy, {{.Name}}!</h2>
    {{if eq .Role "owner"}}
    <p>Your owner account is ready. Head to your dashboard to list your first book.</p>
    {{else}}
    <p>Your account is ready. Start browsing books available for exchange near you.</p>
    {{end}}
    <p>Happy reading,<br>The BookBuddy team</p>
  </body>
</html>`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Welcome to BookBuddy"
		text = fmt.Sprintf("Welcome to BookBuddy, %v! Your account is ready.", data["Name"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
