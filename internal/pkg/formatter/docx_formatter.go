package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(report *Report) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(baseTitle)

	sessionPar := doc.AddParagraph()
	sessionRun := sessionPar.AddRun()
	sessionRun.AddText("Session: " + report.SessionID)

	doc.AddParagraph()

	codePar := doc.AddParagraph()
	codeRun := codePar.AddRun()
	codeRun.Properties().SetFontFamily("Courier New")
	codeRun.AddText(report.Code)

	if report.Explanation != "" {
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		headPar.AddRun().AddText("Explanation")

		bodyPar := doc.AddParagraph()
		bodyPar.AddRun().AddText(report.Explanation)
	}

	if report.Analysis != "" {
		headPar := doc.AddParagraph()
		headPar.SetStyle("Heading2")
		headPar.AddRun().AddText("Analysis")

		bodyPar := doc.AddParagraph()
		bodyPar.AddRun().AddText(report.Analysis)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
