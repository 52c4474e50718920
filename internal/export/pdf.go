package export

import (
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// PDFOptions controls PDF rendering
type PDFOptions struct {
	// FontPath is a TrueType font with Japanese glyphs. Without it the core
	// Helvetica font is used and non-ASCII text is replaced by '?'.
	FontPath string
}

const pdfFont = "report"

// WritePDF writes a one-page A4 report with the site, summary and FL table
func WritePDF(path string, r *Report, opt PDFOptions) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Helvetica"
	text := asciiOnly
	if opt.FontPath != "" {
		pdf.AddUTF8Font(pdfFont, "", opt.FontPath)
		pdf.AddUTF8Font(pdfFont, "B", opt.FontPath)
		family = pdfFont
		text = func(s string) string { return s }
	}
	pdf.SetTitle("Liquefaction assessment", true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, "Liquefaction Assessment")
	pdf.Ln(12)

	pdf.SetFont(family, "", 10)
	s := r.Summary
	lines := []string{
		fmt.Sprintf("Source: %s", text(r.Source)),
		fmt.Sprintf("Method: %s", r.Method),
		fmt.Sprintf("Location: %.6f, %.6f   Start: %s", r.Site.Lat, r.Site.Lon, text(r.Site.StartDate)),
		fmt.Sprintf("Ground water level: %.2f m", r.Site.GroundWaterLevel),
		fmt.Sprintf("Min FL: %.3f at %.2f m   Max FL: %.3f", s.MinFL, s.CriticalDepth, s.MaxFL),
		fmt.Sprintf("Liquefiable rows: %d of %d   Risk: %s", s.Liquefiable, s.Rows, s.Risk),
		fmt.Sprintf("Report %s, generated %s", r.ID, r.GeneratedAt.Format("2006-01-02 15:04 MST")),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	cols := []struct {
		title string
		width float64
	}{
		{"Depth", 16}, {"N", 12}, {"Soil", 34}, {"sv", 18}, {"s'v", 18},
		{"L", 16}, {"N1", 16}, {"Na", 16}, {"RL", 16}, {"FL", 16},
	}
	pdf.SetFont(family, "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, c := range cols {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range r.Rows {
		cells := []string{
			fmt.Sprintf("%.2f", row.Depth),
			fmt.Sprintf("%.0f", row.N),
			text(row.SoilType),
			fmt.Sprintf("%.1f", row.SigmaV),
			fmt.Sprintf("%.1f", row.SigmaPV),
			fmt.Sprintf("%.3f", row.L),
			fmt.Sprintf("%.2f", row.N1),
			fmt.Sprintf("%.2f", row.Na),
			fmt.Sprintf("%.3f", row.RL),
			fmt.Sprintf("%.3f", row.FL),
		}
		fill := row.Liquefiable()
		if fill {
			pdf.SetFillColor(255, 210, 210)
		}
		for i, c := range cols {
			align := "R"
			if i == 2 {
				align = "L"
			}
			pdf.CellFormat(c.width, 5, cells[i], "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.OutputFileAndClose(path)
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}
