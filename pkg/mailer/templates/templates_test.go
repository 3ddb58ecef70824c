package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{
		"Name": "Ann", "Role": "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to BookBuddy", subject)
	assert.Contains(t, text, "Ann")
	assert.Contains(t, html, "Welcome to BookBuddy, Ann!")
	assert.Contains(t, html, "list your first book")

	_, _, seekerHTML, err := Render("welcome", map[string]any{
		"Name": "Bob", "Role": "seeker",
	})
	require.NoError(t, err)
	assert.Contains(t, seekerHTML, "Start browsing books")
	assert.False(t, strings.Contains(seekerHTML, "list your first book"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nonexistent", nil)
	assert.Error(t, err)
}
