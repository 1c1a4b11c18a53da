package model

import "github.com/shopspring/decimal"

// MetricKey identifies a financial line item.
type MetricKey string

const (
	MetricRevenue         MetricKey = "revenue"
	MetricTotalIncome     MetricKey = "total_income"
	MetricSales           MetricKey = "sales"
	MetricTurnover        MetricKey = "turnover"
	MetricPAT             MetricKey = "pat"
	MetricPBT             MetricKey = "pbt"
	MetricEBITDA          MetricKey = "ebitda"
	MetricEPS             MetricKey = "eps"
	MetricFuelCost        MetricKey = "fuel_cost"
	MetricEmployeeCost    MetricKey = "employee_cost"
	MetricFinanceCost     MetricKey = "finance_cost"
	MetricDepreciation    MetricKey = "depreciation"
	MetricTotalDebt       MetricKey = "total_debt"
	MetricBorrowings      MetricKey = "borrowings"
	MetricCashBalance     MetricKey = "cash_balance"
	MetricNetWorth        MetricKey = "net_worth"
	MetricTotalExpenses   MetricKey = "total_expenses"
	MetricProfitBeforeTax MetricKey = "profit_before_tax"
	MetricProfitForPeriod MetricKey = "profit_for_period"
)

// PointInTimeMetrics lists the point-in-time keys in display order.
var PointInTimeMetrics = []MetricKey{
	MetricRevenue,
	MetricTotalIncome,
	MetricSales,
	MetricTurnover,
	MetricPAT,
	MetricPBT,
	MetricEBITDA,
	MetricEPS,
	MetricFuelCost,
	MetricEmployeeCost,
	MetricFinanceCost,
	MetricDepreciation,
	MetricTotalDebt,
	MetricBorrowings,
	MetricCashBalance,
	MetricNetWorth,
}

// QuarterlyMetrics lists the keys that carry a three-column quarterly series.
var QuarterlyMetrics = []MetricKey{
	MetricRevenue,
	MetricTotalIncome,
	MetricFinanceCost,
	MetricTotalExpenses,
	MetricProfitBeforeTax,
	MetricProfitForPeriod,
	MetricEPS,
	MetricBorrowings,
}

// Unit describes how an amount is denominated.
type Unit string

const (
	UnitCrore    Unit = "crore"     // currency, crore scale
	UnitPerShare Unit = "per_share" // currency per share
)

// MetricValue is a single scalar financial fact taken from a document.
type MetricValue struct {
	Key     MetricKey       `json:"key" yaml:"key"`
	Amount  decimal.Decimal `json:"amount" yaml:"amount"`
	Unit    Unit            `json:"unit" yaml:"unit"`
	Display string          `json:"display" yaml:"display"`
}

// Financials maps a metric key to its accepted value. Keys with no accepted
// match are absent.
type Financials map[MetricKey]MetricValue

// Ordered returns the populated values in PointInTimeMetrics order.
func (f Financials) Ordered() []MetricValue {
	out := make([]MetricValue, 0, len(f))
	for _, k := range PointInTimeMetrics {
		if v, ok := f[k]; ok {
			out = append(out, v)
		}
	}
	return out
}

// QuarterlySeries holds the current, previous-quarter and previous-year
// columns of a results table row plus the derived percentage deltas.
// A delta is 0 when its baseline is 0.
type QuarterlySeries struct {
	Key             MetricKey       `json:"key" yaml:"key"`
	Current         decimal.Decimal `json:"current" yaml:"current"`
	PreviousQuarter decimal.Decimal `json:"previous_quarter" yaml:"previous_quarter"`
	PreviousYear    decimal.Decimal `json:"previous_year" yaml:"previous_year"`
	QoQChange       decimal.Decimal `json:"qoq_change" yaml:"qoq_change"`
	YoYChange       decimal.Decimal `json:"yoy_change" yaml:"yoy_change"`
}

// Quarterly maps a metric key to its series.
type Quarterly map[MetricKey]QuarterlySeries

// Ordered returns the populated series in QuarterlyMetrics order.
func (q Quarterly) Ordered() []QuarterlySeries {
	out := make([]QuarterlySeries, 0, len(q))
	for _, k := range QuarterlyMetrics {
		if v, ok := q[k]; ok {
			out = append(out, v)
		}
	}
	return out
}
