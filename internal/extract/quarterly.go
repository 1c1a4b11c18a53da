package extract

import (
	"regexp"

	"github.com/sells-group/finsum/internal/model"
)

// threeColumns captures current, previous-quarter and previous-year-quarter
// values as laid out in standard quarterly results tables.
const threeColumns = amount + `\s+` + amount + `\s+` + amount

type seriesRule struct {
	key      model.MetricKey
	patterns []*regexp.Regexp
}

func series(key model.MetricKey, labels ...string) seriesRule {
	r := seriesRule{key: key}
	for _, l := range labels {
		r.patterns = append(r.patterns, compile(`(?i)`+l+threeColumns))
	}
	return r
}

var quarterlyRules = []seriesRule{
	series(model.MetricRevenue,
		`Revenue\s+from\s+operations\s+`,
		`Total\s+revenue\s+from\s+operations\s+`,
	),
	series(model.MetricTotalIncome,
		`Total\s+Income\s+\(I\+II\)\s+`,
		`Total\s+Income\s+`,
	),
	series(model.MetricFinanceCost,
		`Finance\s+costs\s+`,
	),
	series(model.MetricTotalExpenses,
		`Total\s+expenses\s+\(IV\)\s+`,
		`Total\s+expenses\s+`,
	),
	series(model.MetricProfitBeforeTax,
		`Profit\s+before\s+tax\s+\(III-IV\)\s+`,
		`Profit\s+before\s+tax\s+`,
		`PBT\s+`,
	),
	series(model.MetricProfitForPeriod,
		`Profit\s+for\s+the\s+period\s+\(V-VI\)\s+`,
		`Profit\s+for\s+the\s+period\s+`,
		`Net\s+Profit\s+`,
		`PAT\s+`,
	),
	series(model.MetricEPS,
		`Basic.*?\(Amount in INR\)\s+`,
		`Earnings per share.*?`,
	),
	series(model.MetricBorrowings,
		`Borrowings\s+`,
		`Total\s+borrowings\s+`,
	),
}

// Quarterly extracts three-column series for the quarterly metrics. The
// first pattern that matches settles the metric: if its current value is
// not positive the metric is omitted rather than retried with later
// patterns. Documents that do not use the three-column layout produce no
// series.
func Quarterly(text string) model.Quarterly {
	out := make(model.Quarterly)
	if text == "" {
		return out
	}

	for _, r := range quarterlyRules {
		for _, re := range r.patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			cur := ParseAmount(m[1])
			prevQ := ParseAmount(m[2])
			prevY := ParseAmount(m[3])
			if cur.IsPositive() {
				out[r.key] = model.QuarterlySeries{
					Key:             r.key,
					Current:         cur,
					PreviousQuarter: prevQ,
					PreviousYear:    prevY,
					QoQChange:       PercentChange(prevQ, cur),
					YoYChange:       PercentChange(prevY, cur),
				}
			}
			break
		}
	}

	return out
}
