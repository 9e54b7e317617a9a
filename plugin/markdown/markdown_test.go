package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	service := NewService()

	t.Run("basic markdown", func(t *testing.T) {
		html, err := service.Render("# Day 1\n\nVisit **Fukuoka Tower**.")
		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Day 1</h1>")
		assert.Contains(t, html, "<strong>Fukuoka Tower</strong>")
	})

	t.Run("gfm table", func(t *testing.T) {
		html, err := service.Render("| Stop | Time |\n|------|------|\n| Tower | 10:00 |")
		require.NoError(t, err)
		assert.Contains(t, html, "<table>")
	})

	t.Run("empty input", func(t *testing.T) {
		html, err := service.Render("")
		require.NoError(t, err)
		assert.Empty(t, html)
	})
}
