// Package export writes Analysis records in the supported output formats.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/finsum/internal/model"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatXLSX, FormatPDF}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FileName returns "<name>_analysis.<ext>" for the base of name.
func FileName(name string, f Format) string {
	return filepath.Base(name) + "_analysis." + f.Ext()
}

// ReportFileName returns the download name of the text report.
func ReportFileName(name string) string {
	return FileName(name, FormatText)
}

// Write renders a in format f.
func Write(w io.Writer, a *model.Analysis, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, a)
	case FormatJSON:
		return WriteJSON(w, a)
	case FormatYAML:
		return WriteYAML(w, a)
	case FormatXLSX:
		return WriteXLSX(w, a)
	case FormatPDF:
		return WritePDF(w, a)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// WriteFile writes a into dir under FileName and returns the path written.
func WriteFile(dir string, a *model.Analysis, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "export: create dir %s", dir)
	}

	path := filepath.Join(dir, FileName(a.Document.Name, f))
	out, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "export: create %s", path)
	}
	if err := Write(out, a, f); err != nil {
		out.Close() //nolint:errcheck
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", eris.Wrapf(err, "export: close %s", path)
	}
	return path, nil
}

// WriteText writes the plain-text report.
func WriteText(w io.Writer, a *model.Analysis) error {
	if _, err := io.WriteString(w, a.Report+"\n"); err != nil {
		return eris.Wrap(err, "export: write text")
	}
	return nil
}

// WriteJSON writes a as indented JSON.
func WriteJSON(w io.Writer, a *model.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// WriteYAML writes a as YAML.
func WriteYAML(w io.Writer, a *model.Analysis) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return eris.Wrap(err, "export: encode yaml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "export: flush yaml")
	}
	return nil
}
