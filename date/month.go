package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is a competence month, the month a CVM monthly file refers to.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month.
func NewMonth(year int, month time.Month) Month {
	d := New(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month of d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// Previous returns the month before m.
func (m Month) Previous() Month { return NewMonth(m.y, m.m-1) }

// Range returns the days of the month.
func (m Month) Range() Range {
	return Range{From: New(m.y, m.m, 1), To: New(m.y, m.m+1, 0)}
}

// String returns the CVM file suffix form "YYYYMM".
func (m Month) String() string { return fmt.Sprintf("%04d%02d", m.y, int(m.m)) }

// ParseMonth parses "YYYYMM" or "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 6 {
		return Month{}, fmt.Errorf("invalid month %q want format YYYYMM", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return Month{}, fmt.Errorf("invalid year in month %q: %w", s, err)
	}
	month, err := strconv.Atoi(s[4:])
	if err != nil || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month number in %q", s)
	}
	return NewMonth(year, time.Month(month)), nil
}
