package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finsum/internal/config"
	"github.com/sells-group/finsum/internal/model"
)

// recordingAnalyzer returns a canned analysis and records what it saw.
type recordingAnalyzer struct {
	mu      sync.Mutex
	name    string
	content []byte
}

func (r *recordingAnalyzer) Analyze(_ context.Context, path, name string) *model.Analysis {
	data, _ := os.ReadFile(path)

	r.mu.Lock()
	r.name = name
	r.content = data
	r.mu.Unlock()

	a := analysisFor(name, "📊 report for "+name)
	a.Stats = model.Stats{Financials: 1, Total: 1, Quality: model.QualityLimited}
	return a
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:        8080,
		MaxUploadMB: 1,
		RateLimit:   1000,
		RateBurst:   1000,
		CORSOrigins: []string{"*"},
	}
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestResolvePort_FlagSet(t *testing.T) {
	assert.Equal(t, 9090, resolvePort(9090, 8080))
}

func TestResolvePort_FlagZero(t *testing.T) {
	assert.Equal(t, 8080, resolvePort(0, 8080))
}

func TestBuildMux_HealthEndpoint(t *testing.T) {
	mux := buildMux(nil, testServerConfig())

	rr := serve(mux, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestBuildMux_NilAnalyzerHasNoAnalyzeRoutes(t *testing.T) {
	mux := buildMux(nil, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze", "q4.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuildMux_AnalyzeJSON(t *testing.T) {
	ra := &recordingAnalyzer{}
	mux := buildMux(ra, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze", "Q4 results.pdf", []byte("%PDF-1.4 body")))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get("Content-Disposition"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "id-Q4 results.pdf", got["id"])
	assert.Equal(t, "📊 report for Q4 results.pdf", got["report"])

	assert.Equal(t, "Q4 results.pdf", ra.name)
	assert.Equal(t, []byte("%PDF-1.4 body"), ra.content)
}

func TestBuildMux_AnalyzeOtherFormat(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze?format=yaml", "q4.pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/yaml", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="q4.pdf_analysis.yaml"`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "id: id-q4.pdf")
}

func TestBuildMux_AnalyzeUnknownFormat(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze?format=docx", "q4.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown format")
}

func TestBuildMux_ReportDownload(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze/report", "q4.pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="q4.pdf_analysis.txt"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "📊 report for q4.pdf\n", rr.Body.String())
}

func TestBuildMux_RejectsNonPDF(t *testing.T) {
	ra := &recordingAnalyzer{}
	mux := buildMux(ra, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze", "notes.docx", []byte("PK")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "only PDF uploads are supported")
	assert.Empty(t, ra.name)
}

func TestBuildMux_UppercaseExtensionAccepted(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	rr := serve(mux, uploadRequest(t, "/v1/analyze/report", "SCAN.PDF", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBuildMux_RejectsOversizeUpload(t *testing.T) {
	ra := &recordingAnalyzer{}
	mux := buildMux(ra, testServerConfig())

	big := bytes.Repeat([]byte("x"), 2<<20)
	rr := serve(mux, uploadRequest(t, "/v1/analyze", "big.pdf", big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Empty(t, ra.name)
}

func TestBuildMux_MissingFile(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "q4.pdf"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := serve(mux, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "file is required")
}

func TestBuildMux_NotMultipart(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewReader([]byte(`{"file":"x"}`)))
	req.Header.Set("Content-Type", "application/json")

	rr := serve(mux, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid multipart form")
}

func TestBuildMux_RateLimited(t *testing.T) {
	sc := testServerConfig()
	sc.RateLimit = 0.001
	sc.RateBurst = 1
	mux := buildMux(&recordingAnalyzer{}, sc)

	first := serve(mux, uploadRequest(t, "/v1/analyze/report", "q4.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusOK, first.Code)

	second := serve(mux, uploadRequest(t, "/v1/analyze/report", "q4.pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Health is not rate limited.
	health := serve(mux, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestBuildMux_CORSPreflight(t *testing.T) {
	mux := buildMux(&recordingAnalyzer{}, testServerConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/analyze", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := serve(mux, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartServer_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mux := buildMux(nil, testServerConfig())

	// Find a free port.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	errCh := make(chan error, 1)
	go func() {
		errCh <- startServer(ctx, mux, port)
	}()

	// Wait for server to be ready.
	var ready bool
	for i := 0; i < 50; i++ {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err == nil {
			resp.Body.Close() //nolint:errcheck
			ready = resp.StatusCode == http.StatusOK
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ready, "server did not become ready in time")

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
