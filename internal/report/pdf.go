// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

// WritePDF renders the critique as a paginated PDF at path.
func WritePDF(path, idea, critique string, at time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", types.ErrFilesystem, err)
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Business Idea Analysis", false)
	pdf.SetAuthor(analystName, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(44, 62, 80)
	pdf.MultiCell(0, 10, "Business Idea Analysis", "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, fmt.Sprintf("Date: %s", at.Format(dateLayout)), "", "L", false)
	pdf.MultiCell(0, 6, fmt.Sprintf("Analyst: %s", analystName), "", "L", false)
	pdf.Ln(6)

	writeHeading(pdf, "Original Business Idea")
	writeParagraphs(pdf, idea)
	pdf.Ln(4)

	writeHeading(pdf, "Analysis & Feedback")
	writeParagraphs(pdf, critique)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 11)
	pdf.MultiCell(0, 6, generatorFooter, "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrFilesystem, filepath.Base(path), err)
	}
	return nil
}

func writeHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(52, 73, 94)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

// writeParagraphs splits text on blank lines so the model's prose keeps its
// paragraph structure in the PDF.
func writeParagraphs(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 6, para, "", "L", false)
		pdf.Ln(3)
	}
}
