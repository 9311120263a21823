package cvm

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/date"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding is the character set of a file.
type Encoding int

const (
	Latin1 Encoding = iota // ISO 8859-1, what the CVM publishes
	UTF8
)

func (e Encoding) String() string {
	if e == UTF8 {
		return "utf8"
	}
	return "latin1"
}

// ParseEncoding parses "latin1" (the default, also "iso-8859-1") or "utf8".
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	case "utf8", "utf-8":
		return UTF8, nil
	}
	return Latin1, fmt.Errorf("unknown encoding %q want latin1 or utf8", s)
}

// Options tunes how files are read.
type Options struct {
	Encoding Encoding
	Comma    rune // defaults to ';'
}

// ErrNoHeader is returned for an empty file.
var ErrNoHeader = errors.New("no header line")

// ReadStats counts the rows read from a file.
type ReadStats struct {
	Rows    int // rows returned
	Skipped int // malformed rows
}

// table iterates over the rows of a delimited file.
type table struct {
	r       *csv.Reader
	cols    map[string]int
	width   int
	row     []string
	stats   ReadStats
	dataset string
}

func newTable(r io.Reader, l Layout, opts Options) (*table, error) {
	if opts.Encoding == Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // rows of the wrong width are skipped, not fatal

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", l.Dataset, ErrNoHeader)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: could not read header: %w", l.Dataset, err)
	}
	cols, err := l.resolve(header)
	if err != nil {
		return nil, err
	}
	return &table{r: cr, cols: cols, width: len(header), dataset: l.Dataset}, nil
}

// next advances to the next well formed row. It returns false at the end of
// the file or on an I/O error, reported by err.
func (t *table) next() (bool, error) {
	for {
		row, err := t.r.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			t.stats.Skipped++
			continue
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", t.dataset, err)
		}
		if len(row) != t.width {
			t.stats.Skipped++
			continue
		}
		t.row = row
		t.stats.Rows++
		return true, nil
	}
}

// has reports whether field was found in the header.
func (t *table) has(field string) bool {
	_, ok := t.cols[field]
	return ok
}

// get returns the trimmed value of field in the current row, "" when absent.
func (t *table) get(field string) string {
	i, ok := t.cols[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.row[i])
}

// parseDecimal reads a number. A comma is the decimal separator when there
// is no dot. Unreadable values are null.
func parseDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// parseDate reads a date, the zero date when unreadable.
func parseDate(s string) date.Date {
	d, err := date.Parse(strings.TrimSpace(s))
	if err != nil {
		return date.Date{}
	}
	return d
}

// ReadPositions reads an offshore position file ("Bloco 7").
func ReadPositions(r io.Reader, l Layout, opts Options) (offshore.Positions, ReadStats, error) {
	t, err := newTable(r, l, opts)
	if err != nil {
		return offshore.Positions{}, ReadStats{}, err
	}
	var p offshore.Positions
	for field, flag := range map[string]offshore.Fields{
		FieldInvestmentType: offshore.FieldInvestmentType,
		FieldCostValue:      offshore.FieldCostValue,
		FieldReferenceDate:  offshore.FieldReferenceDate,
		FieldFundName:       offshore.FieldFundName,
	} {
		if t.has(field) {
			p.Fields |= flag
		}
	}
	for {
		ok, err := t.next()
		if err != nil {
			return p, t.stats, err
		}
		if !ok {
			break
		}
		rec := offshore.PositionRecord{
			FundID:         t.get(FieldFundID),
			InvestmentType: t.get(FieldInvestmentType),
			MarketValue:    parseDecimal(t.get(FieldMarketValue)),
			FundName:       t.get(FieldFundName),
		}
		if p.Fields.Has(offshore.FieldCostValue) {
			rec.CostValue = parseDecimal(t.get(FieldCostValue))
		}
		if p.Fields.Has(offshore.FieldReferenceDate) {
			rec.ReferenceDate = parseDate(t.get(FieldReferenceDate))
		}
		p.Records = append(p.Records, rec)
	}
	return p, t.stats, nil
}

// ReadFunds reads the fund registry ("registro_fundo").
func ReadFunds(r io.Reader, l Layout, opts Options) ([]offshore.FundRegistryEntry, ReadStats, error) {
	t, err := newTable(r, l, opts)
	if err != nil {
		return nil, ReadStats{}, err
	}
	var funds []offshore.FundRegistryEntry
	for {
		ok, err := t.next()
		if err != nil {
			return funds, t.stats, err
		}
		if !ok {
			break
		}
		funds = append(funds, offshore.FundRegistryEntry{
			FundID:            t.get(FieldFundID),
			FundName:          t.get(FieldFundName),
			AdministratorID:   t.get(FieldAdministratorID),
			AdministratorName: t.get(FieldAdministratorName),
			ManagerID:         t.get(FieldManagerID),
			ManagerName:       t.get(FieldManagerName),
		})
	}
	return funds, t.stats, nil
}

// ReadManagers reads the portfolio manager registry ("cad_adm_cart_pj").
func ReadManagers(r io.Reader, l Layout, opts Options) ([]offshore.ManagerRegistryEntry, ReadStats, error) {
	t, err := newTable(r, l, opts)
	if err != nil {
		return nil, ReadStats{}, err
	}
	var managers []offshore.ManagerRegistryEntry
	for {
		ok, err := t.next()
		if err != nil {
			return managers, t.stats, err
		}
		if !ok {
			break
		}
		managers = append(managers, offshore.ManagerRegistryEntry{
			ID:         t.get(FieldID),
			Name:       t.get(FieldName),
			City:       t.get(FieldCity),
			State:      t.get(FieldState),
			Street:     t.get(FieldStreet),
			District:   t.get(FieldDistrict),
			PostalCode: t.get(FieldPostalCode),
		})
	}
	return managers, t.stats, nil
}

// OpenPositions reads the position file at path.
func OpenPositions(path string, l Layout, opts Options) (offshore.Positions, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return offshore.Positions{}, ReadStats{}, fmt.Errorf("could not open positions file: %w", err)
	}
	defer f.Close()
	return ReadPositions(f, l, opts)
}

// OpenFunds reads the fund registry at path.
func OpenFunds(path string, l Layout, opts Options) ([]offshore.FundRegistryEntry, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("could not open fund registry: %w", err)
	}
	defer f.Close()
	return ReadFunds(f, l, opts)
}

// OpenManagers reads the manager registry at path.
func OpenManagers(path string, l Layout, opts Options) ([]offshore.ManagerRegistryEntry, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("could not open manager registry: %w", err)
	}
	defer f.Close()
	return ReadManagers(f, l, opts)
}
