package extract

import (
	"regexp"

	"github.com/sells-group/finsum/internal/model"
)

// amount matches a number with optional thousands separators and decimals.
const amount = `([\d,]+\.?\d*)`

type metricRule struct {
	key model.MetricKey
	re  *regexp.Regexp
}

func rule(key model.MetricKey, pattern string) metricRule {
	return metricRule{key: key, re: compile(`(?i)` + pattern)}
}

// financialRules are tried in order. Rules for the same key are contiguous
// so the result order matches model.PointInTimeMetrics.
var financialRules = []metricRule{
	rule(model.MetricRevenue, `Revenue\s+from\s+Operations\s+`+amount),
	rule(model.MetricTotalIncome, `Total\s+Income\s+`+amount),
	rule(model.MetricSales, `Sales?\s+`+amount),
	rule(model.MetricTurnover, `Turnover\s+`+amount),

	rule(model.MetricPAT, `Profit\s+for\s+the\s+period\s+`+amount),
	rule(model.MetricPAT, `Net\s+Profit\s+`+amount),
	rule(model.MetricPAT, `PAT\s+`+amount),
	rule(model.MetricPAT, `Profit\s+after\s+tax\s+`+amount),
	rule(model.MetricPBT, `Profit\s+before\s+Tax\s+`+amount),
	rule(model.MetricPBT, `PBT\s+`+amount),
	rule(model.MetricEBITDA, `EBITDA\s+`+amount),

	rule(model.MetricEPS, `Earnings\s+per\s+share\s+`+amount),
	rule(model.MetricEPS, `EPS\s+`+amount),
	rule(model.MetricEPS, `Basic.*?EPS.*?`+amount),

	rule(model.MetricFuelCost, `Fuel\s+Cost\s+`+amount),
	rule(model.MetricEmployeeCost, `Employee.*?Cost\s+`+amount),
	rule(model.MetricFinanceCost, `Finance\s+Costs?\s+`+amount),
	rule(model.MetricDepreciation, `Depreciation\s+`+amount),

	rule(model.MetricTotalDebt, `Total\s+Debt\s+`+amount),
	rule(model.MetricBorrowings, `Borrowings\s+`+amount),
	rule(model.MetricCashBalance, `Cash.*?Balances?\s+`+amount),
	rule(model.MetricNetWorth, `Net\s+Worth\s+`+amount),
}

// Financials extracts point-in-time metrics from text. For each key the
// first rule whose first occurrence parses to an in-range amount wins; an
// out-of-range match leaves the key open for that key's later rules. Keys
// with no accepted match are absent from the result.
func Financials(text string) model.Financials {
	out := make(model.Financials)
	if text == "" {
		return out
	}

	for _, r := range financialRules {
		if _, done := out[r.key]; done {
			continue
		}
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amt := ParseAmount(m[1])
		if !IsValidAmount(r.key, amt) {
			continue
		}
		unit := UnitFor(r.key)
		out[r.key] = model.MetricValue{
			Key:     r.key,
			Amount:  amt,
			Unit:    unit,
			Display: FormatAmount(amt, unit),
		}
	}

	return out
}
