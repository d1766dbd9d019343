package formatter

import (
	"fmt"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

const baseTitle = "Generated Code Report"

// Report is the exportable result of a completed session.
type Report struct {
	SessionID   string
	Language    string
	Code        string
	Explanation string
	Analysis    string
}

type Formatter interface {
	Format(report *Report) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
