package model

import "time"

// Table is a raw grid of cells found on an early page of a document.
type Table struct {
	Page int        `json:"page" yaml:"page"`
	Rows [][]string `json:"rows" yaml:"rows"`
}

// Document is the output of text acquisition. A failed acquisition yields a
// Document with empty Text and no Tables.
type Document struct {
	Name   string  `json:"name" yaml:"name"`
	Pages  int     `json:"pages" yaml:"pages"`
	Text   string  `json:"-" yaml:"-"`
	Tables []Table `json:"tables" yaml:"tables"`
}

// Empty reports whether no text was acquired.
func (d Document) Empty() bool {
	return d.Text == ""
}

// QualityTier is a coarse label derived from the total data point count.
type QualityTier string

const (
	QualityExcellent QualityTier = "EXCELLENT"
	QualityGood      QualityTier = "GOOD"
	QualityBasic     QualityTier = "BASIC"
	QualityLimited   QualityTier = "LIMITED"
)

// Stats summarizes how much was extracted from a document.
type Stats struct {
	Financials    int         `json:"financials" yaml:"financials"`
	Announcements int         `json:"announcements" yaml:"announcements"`
	Operations    int         `json:"operations" yaml:"operations"`
	Total         int         `json:"total" yaml:"total"`
	Quality       QualityTier `json:"quality" yaml:"quality"`
}

// Analysis is the complete result of running one document through the
// pipeline. It is rebuilt per document and shares nothing with other runs.
type Analysis struct {
	ID            string        `json:"id" yaml:"id"`
	Document      Document      `json:"document" yaml:"document"`
	AnalyzedAt    time.Time     `json:"analyzed_at" yaml:"analyzed_at"`
	Duration      time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Financials    Financials    `json:"financials" yaml:"financials"`
	Quarterly     Quarterly     `json:"quarterly" yaml:"quarterly"`
	Announcements Announcements `json:"announcements" yaml:"announcements"`
	Operations    Operations    `json:"operations" yaml:"operations"`
	Stats         Stats         `json:"stats" yaml:"stats"`
	Report        string        `json:"report" yaml:"report"`
}
