package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	fmt.Fprintf(&buf, "Session: %s\n\n", report.SessionID)

	fmt.Fprintf(&buf, "## Code\n\n```%s\n%s\n```\n", report.Language, report.Code)

	if report.Explanation != "" {
		fmt.Fprintf(&buf, "\n## Explanation\n\n%s\n", report.Explanation)
	}
	if report.Analysis != "" {
		fmt.Fprintf(&buf, "\n## Analysis\n\n%s\n", report.Analysis)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
