package formatter

import (
	"testing"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Create(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ResultFormat{entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX} {
		f, err := factory.Create(format)
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, f.ContentType())
		assert.NotEmpty(t, f.FileExtension())
	}

	_, err := factory.Create(entity.ResultFormat("xml"))
	assert.Error(t, err)
}

func TestMarkdownFormatter_Format(t *testing.T) {
	f := NewMarkdownFormatter()

	data, err := f.Format(&Report{
		SessionID:   "s-1",
		Language:    "python",
		Code:        "x = 1",
		Explanation: "Assigns one.",
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# Generated Code Report")
	assert.Contains(t, out, "Session: s-1")
	assert.Contains(t, out, "```python\nx = 1\n```")
	assert.Contains(t, out, "## Explanation")
	assert.NotContains(t, out, "## Analysis", "empty sections are omitted")
}

func TestMarkdownFormatter_Metadata(t *testing.T) {
	f := NewMarkdownFormatter()
	assert.Equal(t, "text/markdown; charset=utf-8", f.ContentType())
	assert.Equal(t, ".md", f.FileExtension())
}
