// Package render writes report narratives to PDF documents. Rendering is a
// pure function of its inputs apart from creating the output file.
package render

import (
	"github.com/jung-kurt/gofpdf"
)

// PDF writes a one-page document with a title and one paragraph per line.
func PDF(path, title string, lines []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.MultiCell(0, 6, line, "", "L", false)
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(path)
}
