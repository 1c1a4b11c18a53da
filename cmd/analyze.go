package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finsum/internal/export"
	"github.com/sells-group/finsum/internal/model"
	"github.com/sells-group/finsum/internal/ocr"
	"github.com/sells-group/finsum/internal/pipeline"
)

var (
	analyzeOutDir      string
	analyzeFormat      string
	analyzeStdout      bool
	analyzeConcurrency int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>...",
	Short: "Extract financial facts from PDF filings and write reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeFormat != "" {
			cfg.Output.Format = analyzeFormat
		}
		if analyzeOutDir != "" {
			cfg.Output.Dir = analyzeOutDir
		}
		if analyzeConcurrency > 0 {
			cfg.Batch.MaxConcurrentDocuments = analyzeConcurrency
		}
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		format, err := export.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}

		ext, err := ocr.NewExtractor(cfg.OCR, cfg.OCR.MistralKey)
		if err != nil {
			return err
		}
		p := pipeline.New(ext, pipeline.OptionsFromConfig(cfg))

		opts := analyzeOptions{
			outDir:      cfg.Output.Dir,
			format:      format,
			stdout:      analyzeStdout,
			concurrency: cfg.Batch.MaxConcurrentDocuments,
		}
		return runAnalyze(cmd.Context(), p, args, opts, cmd.OutOrStdout())
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", "", "output directory (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "output format: text, json, yaml, xlsx or pdf (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeStdout, "stdout", false, "print the text report to stdout instead of writing files")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "documents analyzed in parallel (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

// batchAnalyzer is the part of the pipeline the analyze command needs.
type batchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, paths []string, concurrency int) ([]*model.Analysis, error)
}

type analyzeOptions struct {
	outDir      string
	format      export.Format
	stdout      bool
	concurrency int
}

// runAnalyze analyzes paths and either prints each report to out or writes
// one file per document into opts.outDir.
func runAnalyze(ctx context.Context, p batchAnalyzer, paths []string, opts analyzeOptions, out io.Writer) error {
	results, err := p.AnalyzeBatch(ctx, paths, opts.concurrency)
	if err != nil {
		return err
	}

	for i, a := range results {
		if opts.stdout {
			if i > 0 {
				fmt.Fprintln(out) //nolint:errcheck
			}
			if err := export.WriteText(out, a); err != nil {
				return err
			}
			continue
		}

		path, err := export.WriteFile(opts.outDir, a, opts.format)
		if err != nil {
			return eris.Wrapf(err, "analyze: write %s", a.Document.Name)
		}
		zap.L().Info("report written",
			zap.String("document", a.Document.Name),
			zap.String("path", path),
			zap.String("quality", string(a.Stats.Quality)),
		)
	}
	return nil
}
