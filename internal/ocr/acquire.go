package ocr

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/finsum/internal/model"
)

// Defaults for the raw table scan.
const (
	DefaultTablePages   = 5
	DefaultMinTableRows = 2
)

// Options tunes Acquire.
type Options struct {
	// TablePages is how many leading pages are scanned for tables.
	TablePages int
	// MinTableRows is the row count a block must exceed to be kept.
	MinTableRows int
}

func (o Options) withDefaults() Options {
	if o.TablePages <= 0 {
		o.TablePages = DefaultTablePages
	}
	if o.MinTableRows <= 0 {
		o.MinTableRows = DefaultMinTableRows
	}
	return o
}

// Acquire extracts the text and raw tables of pdfPath. It never fails: any
// extraction error is logged and an empty Document is returned.
func Acquire(ctx context.Context, ext Extractor, pdfPath string, opts Options) model.Document {
	opts = opts.withDefaults()
	doc := model.Document{Name: filepath.Base(pdfPath)}

	pages, err := ext.ExtractPages(ctx, pdfPath)
	if err != nil {
		zap.L().Warn("ocr: text acquisition failed",
			zap.String("document", pdfPath),
			zap.Error(err),
		)
		return doc
	}

	doc.Pages = len(pages)
	doc.Text = joinPages(pages)
	if doc.Empty() {
		return doc
	}

	for i, page := range pages {
		if i >= opts.TablePages {
			break
		}
		for _, rows := range ScanTables(page, opts.MinTableRows) {
			doc.Tables = append(doc.Tables, model.Table{Page: i + 1, Rows: rows})
		}
	}
	return doc
}

func joinPages(pages []string) string {
	var sb strings.Builder
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	cellGap      = regexp.MustCompile(`\s{2,}`)
	markdownRule = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?$`)
)

// ScanTables finds runs of consecutive lines that split into two or more
// cells. Layout text separates cells with 2+ spaces; markdown tables with
// pipes. Only runs longer than minRows are returned.
func ScanTables(page string, minRows int) [][][]string {
	var (
		tables [][][]string
		run    [][]string
	)
	flush := func() {
		if len(run) > minRows {
			tables = append(tables, run)
		}
		run = nil
	}

	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimSpace(line)
		if markdownRule.MatchString(line) {
			continue
		}
		cells := splitCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		run = append(run, cells)
	}
	flush()
	return tables
}

func splitCells(line string) []string {
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "|") {
		parts := strings.Split(strings.Trim(line, "|"), "|")
		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}
		return cells
	}
	return cellGap.Split(line, -1)
}
