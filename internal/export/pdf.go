package export

import (
	"io"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"github.com/sells-group/finsum/internal/model"
)

const (
	pdfFontSize   = 9
	pdfLineHeight = 4.5
)

// WritePDF renders the text report as an A4 PDF using a core font.
func WritePDF(w io.Writer, a *model.Analysis) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(a.Document.Name, true)
	pdf.SetCreator("finsum", true)
	pdf.AddPage()
	pdf.SetFont("Courier", "", pdfFontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(a.Report, "\n") {
		if line == "" {
			pdf.Ln(pdfLineHeight)
			continue
		}
		pdf.MultiCell(0, pdfLineHeight, tr(pdfSafe(line)), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "export: render pdf")
	}
	return nil
}

// pdfSafe rewrites a report line for the cp1252 core fonts: the rupee sign
// becomes "Rs." and pictographs are dropped along with one following space.
func pdfSafe(line string) string {
	line = strings.ReplaceAll(line, "₹", "Rs.")

	var sb strings.Builder
	dropped := false
	for _, r := range line {
		if r > unicode.MaxLatin1 && (unicode.Is(unicode.So, r) || unicode.Is(unicode.Variation_Selector, r)) {
			dropped = true
			continue
		}
		if dropped && r == ' ' {
			dropped = false
			continue
		}
		dropped = false
		sb.WriteRune(r)
	}
	return sb.String()
}
