// Package report assembles the plain-text analysis report. Everything here is
// a pure function of its input; the caller supplies the timestamp.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/finsum/internal/extract"
	"github.com/sells-group/finsum/internal/model"
)

const (
	// Title is the first line of every report.
	Title = "📊 FINSUM FINANCIAL DOCUMENT ANALYSIS"

	// MaxItemsPerCategory caps the announcement and operations listings.
	MaxItemsPerCategory = 3
	// MaxKeyAnnouncements caps the executive summary highlights.
	MaxKeyAnnouncements = 3

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	rule = strings.Repeat("=", 70)

	// summaryMetrics appear in the executive summary when present.
	summaryMetrics = []model.MetricKey{
		model.MetricRevenue,
		model.MetricPAT,
		model.MetricPBT,
		model.MetricEBITDA,
		model.MetricEPS,
	}

	// keyCategories feed the executive summary, one item each, in order.
	keyCategories = []model.Category{
		model.CategoryDividends,
		model.CategoryFundRaising,
		model.CategoryAcquisitionsMergers,
		model.CategoryLegalCases,
	}

	// announcementSections are the categories listed in the report body.
	// Categories not listed here still count toward the statistics.
	announcementSections = []struct {
		title    string
		category model.Category
	}{
		{"💰 Dividends & Distributions", model.CategoryDividends},
		{"💸 Fund Raising", model.CategoryFundRaising},
		{"🏢 M&A Activities", model.CategoryAcquisitionsMergers},
		{"👥 Management Changes", model.CategoryAppointments},
		{"📋 Board Meetings", model.CategoryBoardMeetings},
		{"⚖️ Legal Cases & Disputes", model.CategoryLegalCases},
		{"🔧 Regulatory Updates", model.CategoryRegulatoryUpdates},
		{"🏗️ Projects & Expansions", model.CategoryProjectAnnouncements},
		{"🌱 Environmental Matters", model.CategoryEnvironmentalIssues},
		{"📊 Credit Ratings", model.CategoryCreditRating},
	}

	quarterlyNames = map[model.MetricKey]string{
		model.MetricRevenue:         "Revenue from Operations",
		model.MetricTotalIncome:     "Total Income",
		model.MetricFinanceCost:     "Finance Cost",
		model.MetricTotalExpenses:   "Total Expenses",
		model.MetricProfitBeforeTax: "Profit Before Tax (PBT)",
		model.MetricProfitForPeriod: "Profit for Period (PAT)",
		model.MetricEPS:             "EPS",
		model.MetricBorrowings:      "Borrowings",
	}
)

// Input is everything a report is built from.
type Input struct {
	Document      string
	GeneratedAt   time.Time
	Financials    model.Financials
	Quarterly     model.Quarterly
	Announcements model.Announcements
	Operations    model.Operations
	// Duration is the processing time shown in the statistics block.
	Duration time.Duration
}

type lines []string

func (l *lines) add(s ...string) { *l = append(*l, s...) }

func (l *lines) addf(format string, args ...any) { *l = append(*l, fmt.Sprintf(format, args...)) }

func (l *lines) section(title string) { l.add("", rule, title, rule) }

// Build returns the report as an ordered sequence of lines.
func Build(in Input) []string {
	title := cases.Title(language.English)
	var out lines

	out.add(Title, rule)
	out.addf("Document: %s", in.Document)
	out.addf("Analysis: %s", in.GeneratedAt.Format(timestampLayout))
	out.add("")

	// Executive summary.
	out.add("📊 EXECUTIVE SUMMARY", strings.Repeat("-", 20))
	if len(in.Financials) > 0 {
		out.add("", "💰 FINANCIAL PERFORMANCE:")
		for _, k := range summaryMetrics {
			if v, ok := in.Financials[k]; ok {
				out.addf("  • %s: %s", strings.ToUpper(strings.ReplaceAll(string(k), "_", " ")), v.Display)
			}
		}
	}
	if key := keyAnnouncements(in.Announcements); len(key) > 0 {
		out.add("", "🏛️ KEY ANNOUNCEMENTS:")
		for _, a := range key {
			out.addf("  • %s", a)
		}
	}

	// Financial metrics.
	out.section("📈 DETAILED FINANCIAL ANALYSIS")
	if len(in.Financials) == 0 {
		out.add("No financial data extracted")
	}
	for _, v := range in.Financials.Ordered() {
		out.addf("• %s: %s", title.String(strings.ReplaceAll(string(v.Key), "_", " ")), v.Display)
	}

	if len(in.Quarterly) > 0 {
		out.section("📊 QUARTERLY PERFORMANCE")
		for _, s := range in.Quarterly.Ordered() {
			out.addf("• %s: %s (prev qtr %s, %s QoQ; prev year %s, %s YoY)",
				quarterlyNames[s.Key],
				seriesValue(s.Key, s.Current),
				seriesValue(s.Key, s.PreviousQuarter), extract.FormatPercent(s.QoQChange),
				seriesValue(s.Key, s.PreviousYear), extract.FormatPercent(s.YoYChange),
			)
		}
	}

	// Announcements.
	out.section("🏛️ CORPORATE ANNOUNCEMENTS & UPDATES")
	found := false
	for _, sec := range announcementSections {
		items := in.Announcements[sec.category]
		if len(items) == 0 {
			continue
		}
		found = true
		out.add("", sec.title+":")
		for _, item := range head(items, MaxItemsPerCategory) {
			out.addf("  • %s", item)
		}
	}
	if !found {
		out.add("No corporate announcements detected")
	}

	// Operations.
	out.section("🚀 BUSINESS OPERATIONS & PERFORMANCE")
	found = false
	for _, c := range model.OperationCategories {
		items := in.Operations[c]
		if len(items) == 0 {
			continue
		}
		found = true
		out.add("", title.String(strings.ReplaceAll(string(c), "_", " "))+":")
		for _, item := range head(items, MaxItemsPerCategory) {
			out.addf("  • %s", item)
		}
	}
	if !found {
		out.add("No business operations data extracted")
	}

	// Statistics.
	stats := ComputeStats(in.Financials, in.Announcements, in.Operations)
	out.section("📊 EXTRACTION SUMMARY")
	out.addf("• Financial Metrics: %d", stats.Financials)
	out.addf("• Corporate Announcements: %d", stats.Announcements)
	out.addf("• Business Operations: %d", stats.Operations)
	out.addf("• Total Data Points: %d", stats.Total)
	out.addf("• Processing Time: %.1f seconds", in.Duration.Seconds())
	out.addf("• Data Quality: %s", stats.Quality)

	return out
}

// Render joins Build's lines with newlines.
func Render(in Input) string {
	return strings.Join(Build(in), "\n")
}

func keyAnnouncements(a model.Announcements) []string {
	var out []string
	for _, c := range keyCategories {
		if items := a[c]; len(items) > 0 {
			out = append(out, items[0])
		}
	}
	return head(out, MaxKeyAnnouncements)
}

func seriesValue(key model.MetricKey, d decimal.Decimal) string {
	if key == model.MetricEPS {
		return extract.FormatAmount(d, model.UnitPerShare)
	}
	return extract.FormatCrore(d)
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
