// Package pipeline runs documents through acquisition, extraction and report
// assembly.
package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/finsum/internal/config"
	"github.com/sells-group/finsum/internal/extract"
	"github.com/sells-group/finsum/internal/model"
	"github.com/sells-group/finsum/internal/ocr"
	"github.com/sells-group/finsum/internal/report"
)

// Options configures a Pipeline.
type Options struct {
	// Timeout bounds text acquisition. Zero means no limit.
	Timeout time.Duration
	// Dedupe collapses exact repeats in announcements and operations.
	Dedupe  bool
	Acquire ocr.Options
}

// OptionsFromConfig maps loaded configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Timeout: time.Duration(cfg.OCR.TimeoutSecs) * time.Second,
		Dedupe:  cfg.Extract.Dedupe,
		Acquire: ocr.Options{
			TablePages:   cfg.Extract.TablePages,
			MinTableRows: cfg.Extract.MinTableRows,
		},
	}
}

// Pipeline turns PDF files into Analysis records. It holds no per-document
// state and is safe for concurrent use.
type Pipeline struct {
	ext  ocr.Extractor
	opts Options
	now  func() time.Time
}

// New creates a Pipeline backed by ext.
func New(ext ocr.Extractor, opts Options) *Pipeline {
	return &Pipeline{ext: ext, opts: opts, now: time.Now}
}

// Analyze processes a single document. name is the display name used in the
// report; when empty the file's base name is used. Acquisition failures
// produce an Analysis with empty buckets rather than an error.
func (p *Pipeline) Analyze(ctx context.Context, path, name string) *model.Analysis {
	start := p.now()

	actx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	doc := ocr.Acquire(actx, p.ext, path, p.opts.Acquire)
	if name != "" {
		doc.Name = name
	}

	fin := extract.Financials(doc.Text)
	qtr := extract.Quarterly(doc.Text)
	ann := extract.Announcements(doc.Text)
	ops := extract.Operations(doc.Text)
	if p.opts.Dedupe {
		ann, ops = extract.Dedupe(ann, ops)
	}

	analyzedAt := p.now()
	res := &model.Analysis{
		ID:            uuid.NewString(),
		Document:      doc,
		AnalyzedAt:    analyzedAt,
		Financials:    fin,
		Quarterly:     qtr,
		Announcements: ann,
		Operations:    ops,
		Stats:         report.ComputeStats(fin, ann, ops),
		Report: report.Render(report.Input{
			Document:      doc.Name,
			GeneratedAt:   analyzedAt,
			Financials:    fin,
			Quarterly:     qtr,
			Announcements: ann,
			Operations:    ops,
			Duration:      analyzedAt.Sub(start),
		}),
	}
	res.Duration = p.now().Sub(start)

	zap.L().Info("pipeline: document complete",
		zap.String("id", res.ID),
		zap.String("document", doc.Name),
		zap.Int("pages", doc.Pages),
		zap.Int("data_points", res.Stats.Total),
		zap.String("quality", string(res.Stats.Quality)),
		zap.Duration("duration", res.Duration),
	)
	return res
}

// AnalyzeBatch analyzes paths with at most concurrency documents in flight.
// Results are returned in input order. Only context cancellation aborts the
// batch.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, paths []string, concurrency int) ([]*model.Analysis, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("pipeline: processing batch",
		zap.Int("documents", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]*model.Analysis, len(paths))
	var empty atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := p.Analyze(gctx, path, "")
			if res.Document.Empty() {
				empty.Add(1)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: batch")
	}

	zap.L().Info("pipeline: batch complete",
		zap.Int("documents", len(paths)),
		zap.Int64("empty", empty.Load()),
	)
	return results, nil
}
