package offshore

import "fmt"

// Strategy identifies how two tables were joined.
type Strategy int

const (
	StrategyNone Strategy = iota // nothing matched
	ByIdentifier
	ByName
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case ByIdentifier:
		return "identifier"
	case ByName:
		return "name"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// MatchAttempt records the outcome of one strategy.
type MatchAttempt struct {
	Strategy Strategy
	Matched  int
}

// MatchResult describes a join: every attempt in order, the strategy
// finally used and how many left rows found a right row.
type MatchResult struct {
	Stage    string
	Attempts []MatchAttempt
	Strategy Strategy
	Matched  int
	Total    int
}

// FellBack reports whether the join used a strategy other than the first one.
func (r MatchResult) FellBack() bool {
	return r.Strategy != StrategyNone && len(r.Attempts) > 0 && r.Attempts[0].Strategy != r.Strategy
}

// Rate is the matched fraction of left rows, 0 for an empty left table.
func (r MatchResult) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Total)
}

func (r MatchResult) String() string {
	return fmt.Sprintf("%s: %d/%d matched by %s", r.Stage, r.Matched, r.Total, r.Strategy)
}

// KeyFunc extracts a join key from a row. Rows with ok == false never match.
type KeyFunc[T any] func(T) (key string, ok bool)

// IdentifierKey joins on the normalized form of a raw identifier.
func IdentifierKey[T any](raw func(T) string) KeyFunc[T] {
	return func(t T) (string, bool) {
		id := NormalizeID(raw(t))
		return string(id), id.Valid()
	}
}

// NameKey joins on trimmed, uppercased names.
func NameKey[T any](name func(T) string) KeyFunc[T] {
	return func(t T) (string, bool) {
		n := NormalizeName(name(t))
		return n, n != ""
	}
}

// MatchStrategy is a pair of key functions.
type MatchStrategy[L, R any] struct {
	Strategy Strategy
	Left     KeyFunc[L]
	Right    KeyFunc[R]
}

// join performs a left outer join. When several right rows share a key the
// first one in right order wins.
func (s MatchStrategy[L, R]) join(left []L, right []R) (rows []*R, matched int) {
	index := make(map[string]int, len(right))
	for i := range right {
		k, ok := s.Right(right[i])
		if !ok {
			continue
		}
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}

	rows = make([]*R, len(left))
	for i := range left {
		k, ok := s.Left(left[i])
		if !ok {
			continue
		}
		if j, found := index[k]; found {
			rows[i] = &right[j]
			matched++
		}
	}
	return rows, matched
}

// Matcher joins two tables trying its strategies in order.
//
// A strategy is accepted as soon as it matches at least one row and at least
// MinMatchRate of the left rows. If none is accepted the attempt with the
// most matches is kept; if every attempt matched nothing the join is empty.
type Matcher[L, R any] struct {
	Stage        string
	Strategies   []MatchStrategy[L, R]
	MinMatchRate float64
}

// Join is the left table augmented with the matched right rows.
type Join[R any] struct {
	Rows   []*R // aligned with the left table, nil when unmatched
	Result MatchResult
}

// Match joins left with right. It never fails.
func (m Matcher[L, R]) Match(left []L, right []R) Join[R] {
	res := MatchResult{Stage: m.Stage, Total: len(left)}
	var best []*R
	for _, s := range m.Strategies {
		rows, n := s.join(left, right)
		res.Attempts = append(res.Attempts, MatchAttempt{Strategy: s.Strategy, Matched: n})
		if n == 0 {
			continue
		}
		if float64(n) >= m.MinMatchRate*float64(len(left)) {
			best, res.Strategy, res.Matched = rows, s.Strategy, n
			break
		}
		if n > res.Matched {
			best, res.Strategy, res.Matched = rows, s.Strategy, n
		}
	}
	if best == nil {
		best = make([]*R, len(left))
	}
	return Join[R]{Rows: best, Result: res}
}

// FundLink is a fund aggregate with the fund registry row it was matched to.
type FundLink struct {
	Fund     FundAggregate
	Registry *FundRegistryEntry
}

// FundRegistryMatcher joins fund aggregates with the fund registry: by fund
// identifier, then by fund name.
func FundRegistryMatcher(minRate float64) Matcher[FundAggregate, FundRegistryEntry] {
	return Matcher[FundAggregate, FundRegistryEntry]{
		Stage:        "fund registry",
		MinMatchRate: minRate,
		Strategies: []MatchStrategy[FundAggregate, FundRegistryEntry]{
			{
				Strategy: ByIdentifier,
				Left:     func(f FundAggregate) (string, bool) { return string(f.FundID), f.FundID.Valid() },
				Right:    IdentifierKey(func(e FundRegistryEntry) string { return e.FundID }),
			},
			{
				Strategy: ByName,
				Left:     NameKey(func(f FundAggregate) string { return f.Name }),
				Right:    NameKey(func(e FundRegistryEntry) string { return e.FundName }),
			},
		},
	}
}

// EntityRegistryMatcher joins linked funds with the manager registry using the
// entity playing role: by identifier, then by legal name.
func EntityRegistryMatcher(role Role, minRate float64) Matcher[FundLink, ManagerRegistryEntry] {
	entity := func(l FundLink) (id, name string) {
		if l.Registry == nil {
			return "", ""
		}
		return l.Registry.Entity(role)
	}
	return Matcher[FundLink, ManagerRegistryEntry]{
		Stage:        role.String() + " registry",
		MinMatchRate: minRate,
		Strategies: []MatchStrategy[FundLink, ManagerRegistryEntry]{
			{
				Strategy: ByIdentifier,
				Left:     IdentifierKey(func(l FundLink) string { id, _ := entity(l); return id }),
				Right:    IdentifierKey(func(e ManagerRegistryEntry) string { return e.ID }),
			},
			{
				Strategy: ByName,
				Left:     NameKey(func(l FundLink) string { _, name := entity(l); return name }),
				Right:    NameKey(func(e ManagerRegistryEntry) string { return e.Name }),
			},
		},
	}
}
