package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, html, err := Render("welcome", map[string]any{"Name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome aboard", subject)
	assert.Contains(t, html, "Welcome, Alice!")
}

func TestRenderResetPassword(t *testing.T) {
	subject, html, err := Render("reset_password", map[string]any{
		"Name":     "Alice",
		"ResetURL": "https://example.com/reset?token=abc",
		"Expires":  "30m0s",
	})
	require.NoError(t, err)
	assert.Equal(t, "Reset your password", subject)
	assert.Contains(t, html, `href="https://example.com/reset?token=abc"`)
	assert.Contains(t, html, "30m0s")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("newsletter", nil)
	assert.Error(t, err)
}

func TestRenderEscapesHTML(t *testing.T) {
	_, html, err := Render("welcome", map[string]any{"Name": "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
