package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome, {{.Name}}!</h2>
    <p>Your account is ready. Log in to start writing posts and joining the
    conversation.</p>
  </body>
</html>`))

var resetPasswordHTML = template.Must(template.New("reset_password").Parse(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Password reset</h2>
    <p>Hi {{.Name}},</p>
    <p>We received a request to reset your password. The link below is valid
    for {{.Expires}}.</p>
    <p><a href="{{.ResetURL}}">Reset your password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>`))

// Render returns subject and HTML body for a known template name.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case "welcome":
		subject = "Welcome aboard"
		tpl = welcomeHTML
	case "reset_password":
		subject = "Reset your password"
		tpl = resetPasswordHTML
	default:
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
