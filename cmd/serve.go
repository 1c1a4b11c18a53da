package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/finsum/internal/config"
	"github.com/sells-group/finsum/internal/export"
	"github.com/sells-group/finsum/internal/model"
	"github.com/sells-group/finsum/internal/ocr"
	"github.com/sells-group/finsum/internal/pipeline"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ext, err := ocr.NewExtractor(cfg.OCR, cfg.OCR.MistralKey)
		if err != nil {
			return err
		}
		p := pipeline.New(ext, pipeline.OptionsFromConfig(cfg))

		return startServer(ctx, buildMux(p, cfg.Server), resolvePort(servePort, cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// documentAnalyzer is the part of the pipeline the HTTP handlers need.
type documentAnalyzer interface {
	Analyze(ctx context.Context, path, name string) *model.Analysis
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// buildMux wires the analysis routes. A nil analyzer serves only /health.
func buildMux(p documentAnalyzer, sc config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: sc.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if p == nil {
		return r
	}

	h := &analyzeHandler{
		analyzer:  p,
		maxUpload: int64(sc.MaxUploadMB) << 20,
	}
	r.Route("/v1/analyze", func(r chi.Router) {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(sc.RateLimit), sc.RateBurst)))
		r.Post("/", h.analyze)
		r.Post("/report", h.report)
	})
	return r
}

// startServer serves h on port until ctx is done, then shuts down gracefully.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	case <-ctx.Done():
		zap.L().Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			zap.L().Error("graceful shutdown failed", zap.Error(err))
			return eris.Wrap(srv.Close(), "server close")
		}
		return nil
	}
}

func rateLimit(lim *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type analyzeHandler struct {
	analyzer  documentAnalyzer
	maxUpload int64
}

// analyze returns the Analysis as JSON, or as an attachment when ?format=
// names another export format.
func (h *analyzeHandler) analyze(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := export.ParseFormat(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	a, ok := h.run(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format != export.FormatJSON {
		setAttachment(w, export.FileName(a.Document.Name, format))
	}
	if err := export.Write(w, a, format); err != nil {
		zap.L().Error("write response failed", zap.String("document", a.Document.Name), zap.Error(err))
	}
}

// report returns the plain-text report as a download.
func (h *analyzeHandler) report(w http.ResponseWriter, r *http.Request) {
	a, ok := h.run(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", export.FormatText.ContentType())
	setAttachment(w, export.ReportFileName(a.Document.Name))
	if err := export.WriteText(w, a); err != nil {
		zap.L().Error("write response failed", zap.String("document", a.Document.Name), zap.Error(err))
	}
}

// run saves the uploaded "file" part to a temp file and analyzes it. On
// failure it writes the error response and returns false.
func (h *analyzeHandler) run(w http.ResponseWriter, r *http.Request) (*model.Analysis, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, false
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return nil, false
	}
	defer file.Close() //nolint:errcheck

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF uploads are supported")
		return nil, false
	}

	path, err := saveUpload(file)
	if err != nil {
		zap.L().Error("save upload failed", zap.String("document", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return nil, false
	}
	defer os.Remove(path) //nolint:errcheck

	return h.analyzer.Analyze(r.Context(), path, name), true
}

func saveUpload(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "finsum-*.pdf")
	if err != nil {
		return "", eris.Wrap(err, "serve: create temp file")
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmp.Name()) //nolint:errcheck
		return "", eris.Wrap(err, "serve: copy upload")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name()) //nolint:errcheck
		return "", eris.Wrap(err, "serve: close temp file")
	}
	return tmp.Name(), nil
}

func setAttachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
