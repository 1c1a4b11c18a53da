package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/finsum/internal/model"
)

// WriteXLSX writes a as a workbook with one sheet per result bucket plus one
// sheet per raw table.
func WriteXLSX(w io.Writer, a *model.Analysis) error {
	f := xlsx.NewFile()

	summary, err := addSheet(f, "Summary", "Field", "Value")
	if err != nil {
		return err
	}
	addStrings(summary, "Document", a.Document.Name)
	addStrings(summary, "Analysis ID", a.ID)
	addStrings(summary, "Analyzed At", a.AnalyzedAt.Format(time.RFC3339))
	addStrings(summary, "Pages", fmt.Sprint(a.Document.Pages))
	addStrings(summary, "Total Data Points", fmt.Sprint(a.Stats.Total))
	addStrings(summary, "Data Quality", string(a.Stats.Quality))

	fin, err := addSheet(f, "Financials", "Metric", "Amount", "Unit", "Display")
	if err != nil {
		return err
	}
	for _, v := range a.Financials.Ordered() {
		row := fin.AddRow()
		row.AddCell().SetString(string(v.Key))
		addDecimal(row, v.Amount)
		row.AddCell().SetString(string(v.Unit))
		row.AddCell().SetString(v.Display)
	}

	qtr, err := addSheet(f, "Quarterly", "Metric", "Current", "Previous Quarter", "Previous Year", "QoQ %", "YoY %")
	if err != nil {
		return err
	}
	for _, s := range a.Quarterly.Ordered() {
		row := qtr.AddRow()
		row.AddCell().SetString(string(s.Key))
		for _, d := range []decimal.Decimal{s.Current, s.PreviousQuarter, s.PreviousYear, s.QoQChange, s.YoYChange} {
			addDecimal(row, d)
		}
	}

	ann, err := addSheet(f, "Announcements", "Category", "Item")
	if err != nil {
		return err
	}
	for _, c := range model.Categories {
		for _, item := range a.Announcements[c] {
			addStrings(ann, string(c), item)
		}
	}

	ops, err := addSheet(f, "Operations", "Category", "Item")
	if err != nil {
		return err
	}
	for _, c := range model.OperationCategories {
		for _, item := range a.Operations[c] {
			addStrings(ops, string(c), item)
		}
	}

	for i, t := range a.Document.Tables {
		sheet, err := addSheet(f, fmt.Sprintf("Table %d (p%d)", i+1, t.Page))
		if err != nil {
			return err
		}
		for _, cells := range t.Rows {
			addStrings(sheet, cells...)
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

func addSheet(f *xlsx.File, name string, header ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "export: add sheet %s", name)
	}
	if len(header) > 0 {
		addStrings(sheet, header...)
	}
	return sheet, nil
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addDecimal(row *xlsx.Row, d decimal.Decimal) {
	row.AddCell().SetFloat(d.InexactFloat64())
}
