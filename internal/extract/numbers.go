package extract

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/finsum/internal/model"
)

const rupee = "₹"

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.English)
)

// ParseAmount strips thousands separators, maps non-ASCII decimal digits to
// ASCII and parses s as a decimal. Anything unparseable is 0, which callers
// treat as "no value".
func ParseAmount(s string) decimal.Decimal {
	clean := strings.Map(func(r rune) rune {
		if r == ',' {
			return -1
		}
		if d, ok := asciiDigit(r); ok {
			return d
		}
		return r
	}, trimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PercentChange returns (cur-old)/old*100, or 0 when old is 0. The zero
// substitute conflates "no change" with "undefined"; display code expects a
// number either way.
func PercentChange(old, cur decimal.Decimal) decimal.Decimal {
	if old.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(old).Div(old).Mul(hundred)
}

type amountRange struct {
	min, max decimal.Decimal
}

func newRange(min, max float64) amountRange {
	return amountRange{min: decimal.NewFromFloat(min), max: decimal.NewFromFloat(max)}
}

var (
	defaultRange = newRange(1, 10_000_000)

	metricRanges = map[model.MetricKey]amountRange{
		model.MetricRevenue:      newRange(10, 10_000_000),
		model.MetricPAT:          newRange(1, 1_000_000),
		model.MetricPBT:          newRange(1, 1_000_000),
		model.MetricEBITDA:       newRange(1, 1_000_000),
		model.MetricEPS:          newRange(0.01, 10_000),
		model.MetricFuelCost:     newRange(10, 500_000),
		model.MetricEmployeeCost: newRange(10, 500_000),
		model.MetricTotalDebt:    newRange(10, 5_000_000),
	}
)

// IsValidAmount reports whether amount is positive and inside the plausible
// range for key (inclusive). Keys without a specific range use 1–10,000,000.
func IsValidAmount(key model.MetricKey, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	r, ok := metricRanges[key]
	if !ok {
		r = defaultRange
	}
	return amount.GreaterThanOrEqual(r.min) && amount.LessThanOrEqual(r.max)
}

// UnitFor returns the unit a metric is reported in.
func UnitFor(key model.MetricKey) model.Unit {
	if key == model.MetricEPS {
		return model.UnitPerShare
	}
	return model.UnitCrore
}

// FormatAmount renders amount for display: "₹1,234 cr" for crore values and
// "₹12.34" for per-share values. Rounding applies to the nearest float64, so
// 2.675 (stored as 2.67499...) renders as "₹2.67".
func FormatAmount(amount decimal.Decimal, unit model.Unit) string {
	f := amount.InexactFloat64()
	if unit == model.UnitPerShare {
		return rupee + strconv.FormatFloat(f, 'f', 2, 64)
	}
	return rupee + GroupThousands(decimal.RequireFromString(strconv.FormatFloat(f, 'f', 0, 64))) + " cr"
}

// FormatCrore renders amount with two decimals and thousands grouping, e.g.
// "₹1,234.50 cr".
func FormatCrore(amount decimal.Decimal) string {
	return rupee + printer.Sprintf("%.2f", amount.InexactFloat64()) + " cr"
}

// FormatPercent renders a signed one-decimal percentage, e.g. "+12.2%".
func FormatPercent(pct decimal.Decimal) string {
	s := pct.StringFixedBank(1)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// GroupThousands renders the integer part of d with comma separators.
func GroupThousands(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.IntPart())
}
