package date

import "fmt"

// Range represents a range of dates. A zero bound is open.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included).
// The zero date is only contained by the fully open range.
func (r Range) Contains(date Date) bool {
	if r.IsOpen() {
		return true
	}
	if date.IsZero() {
		return false
	}
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no bound at all.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// Identifier compute a unique identifier for the Range, "all" when it is open.
func (r Range) Identifier() string {
	switch {
	case r.IsOpen():
		return "all"
	case r.From.IsZero():
		return fmt.Sprintf("..%s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("%s..", r.From)
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}
