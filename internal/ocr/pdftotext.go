package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// PdfToText extracts text from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// PageCount parses pdfPath with pdfcpu and returns its page count.
func PageCount(pdfPath string) (int, error) {
	pdfCtx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return 0, eris.Wrapf(err, "ocr: read PDF %s", pdfPath)
	}
	return pdfCtx.PageCount, nil
}

// ExtractPages checks that pdfPath parses as a PDF, runs pdftotext -layout on
// it and splits stdout into pages on form feeds.
func (p *PdfToText) ExtractPages(ctx context.Context, pdfPath string) ([]string, error) {
	count, err := PageCount(pdfPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	pages := splitPages(stdout.String())
	if len(pages) != count {
		zap.L().Debug("ocr: page count mismatch",
			zap.String("document", pdfPath),
			zap.Int("pdf_pages", count),
			zap.Int("text_pages", len(pages)),
		)
	}
	return pages, nil
}

// splitPages splits pdftotext output on form feeds. pdftotext terminates every
// page with one, so the trailing empty element is dropped.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
