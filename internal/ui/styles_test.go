package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStyles(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	for name, style := range map[string]lipgloss.Style{
		"title": StyleTitle,
		"done":  StyleDone,
		"error": StyleError,
	} {
		out := style.Render("Buy milk")
		assert.Contains(t, out, "Buy milk", name)
		assert.NotEqual(t, "Buy milk", out, "%s should add ANSI codes when forced", name)
	}
}

func TestStyleDone_Strikethrough(t *testing.T) {
	assert.True(t, StyleDone.GetStrikethrough())
	assert.False(t, StyleText.GetStrikethrough())
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := Icon("✓", StyleSuccess)
	assert.Contains(t, out, "✓")
	assert.NotEqual(t, "✓", out)
}
