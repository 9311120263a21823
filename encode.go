package offshore

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// TableHeader is the column order of every tabular export.
var TableHeader = []string{
	"Manager_ID",
	"Manager_Name",
	"City",
	"State",
	"Total_Market_Value",
	"Total_Cost_Value",
	"Number_of_Funds",
	"Percentage_of_Total",
}

// CSVOptions tunes EncodeCSV.
type CSVOptions struct {
	Comma rune // defaults to ','
	BOM   bool // prefix an UTF-8 byte order mark, as spreadsheets expect
}

const utf8BOM = "\ufeff"

// row formats a manager with plain decimal amounts: exports are data, not reports.
func row(m AggregatedManager) []string {
	return []string{
		m.ID.String(),
		m.Name,
		m.City,
		m.State,
		m.MarketValue.Decimal().StringFixed(2),
		m.CostValue.Decimal().StringFixed(2),
		strconv.Itoa(m.Funds),
		strconv.FormatFloat(float64(m.Percent), 'f', 2, 64),
	}
}

// EncodeCSV writes managers as a CSV table with TableHeader.
func EncodeCSV(w io.Writer, managers []AggregatedManager, opts CSVOptions) error {
	if opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	if err := cw.Write(TableHeader); err != nil {
		return err
	}
	for _, m := range managers {
		if err := cw.Write(row(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// jmanager is the JSON object of one manager. Amounts are JSON numbers
// written from their decimal text so no precision is lost.
type jmanager struct {
	Rank          int         `json:"rank"`
	ID            string      `json:"id,omitempty"`
	Name          string      `json:"name"`
	City          string      `json:"city,omitempty"`
	State         string      `json:"state,omitempty"`
	MarketValue   json.Number `json:"market_value"`
	CostValue     json.Number `json:"cost_value"`
	Funds         int         `json:"funds"`
	Percent       json.Number `json:"percent"`
	ReferenceDate string      `json:"reference_date,omitempty"`
}

// EncodeJSON writes managers as an indented JSON array.
func EncodeJSON(w io.Writer, managers []AggregatedManager) error {
	list := make([]jmanager, len(managers))
	for i, m := range managers {
		list[i] = jmanager{
			Rank:          m.Rank,
			ID:            m.ID.String(),
			Name:          m.Name,
			City:          m.City,
			State:         m.State,
			MarketValue:   json.Number(m.MarketValue.Decimal().StringFixed(2)),
			CostValue:     json.Number(m.CostValue.Decimal().StringFixed(2)),
			Funds:         m.Funds,
			Percent:       json.Number(strconv.FormatFloat(float64(m.Percent), 'f', 2, 64)),
			ReferenceDate: m.ReferenceDate.String(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// XLSXSheet is the name of the sheet written by EncodeXLSX.
const XLSXSheet = "Managers"

// EncodeXLSX writes managers as a single sheet workbook, amounts as numbers.
func EncodeXLSX(w io.Writer, managers []AggregatedManager) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("could not name sheet: %w", err)
	}

	header := make([]any, len(TableHeader))
	for i, h := range TableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return err
	}
	for i, m := range managers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			m.ID.String(),
			m.Name,
			m.City,
			m.State,
			m.MarketValue.AsFloat(),
			m.CostValue.AsFloat(),
			m.Funds,
			float64(m.Percent),
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &values); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
