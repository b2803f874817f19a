// Package render writes printable recipe cards.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/gorecipe/internal/recipe"
)

// WritePDF renders doc as a one-column A4 recipe card at path.
func WritePDF(doc recipe.Document, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("render: empty output path")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate so accented titles survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	title := doc.Title
	if title == "" {
		title = "Untitled recipe"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	if meta := summaryLine(doc); meta != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr(meta), "", "L", false)
		pdf.Ln(3)
	}

	heading(pdf, "Ingredients")
	pdf.SetFont("Helvetica", "", 11)
	for _, ing := range doc.Prep.Ingredients {
		pdf.MultiCell(0, 5, tr("- "+ing.Item), "", "L", false)
	}
	pdf.Ln(4)

	heading(pdf, "Instructions")
	pdf.SetFont("Helvetica", "", 11)
	for i, step := range doc.Cook.Steps {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
		pdf.Ln(1)
	}

	if doc.SourceURL != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Write(5, "Source: ")
		pdf.WriteLinkString(5, doc.SourceURL, doc.SourceURL)
		pdf.Ln(5)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("render: write pdf: %w", err)
	}
	return nil
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
}

// summaryLine joins yields and total time, skipping what is unknown.
func summaryLine(doc recipe.Document) string {
	var parts []string
	if doc.Yields != "" {
		parts = append(parts, doc.Yields)
	}
	if doc.TotalTime > 0 {
		parts = append(parts, formatMinutes(doc.TotalTime))
	}
	return strings.Join(parts, " | ")
}

func formatMinutes(m int) string {
	h, mins := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, mins)
	}
}
