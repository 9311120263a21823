package offshore

import (
	"fmt"
	"strings"

	"github.com/etnz/offshore/date"
	"github.com/shopspring/decimal"
)

// Fields declares which optional position columns a source carried.
// It is resolved once when the source is loaded.
type Fields uint8

const (
	FieldInvestmentType Fields = 1 << iota
	FieldCostValue
	FieldReferenceDate
	FieldFundName
)

// Has reports whether every field in x is present.
func (f Fields) Has(x Fields) bool { return f&x == x }

func (f Fields) String() string {
	var names []string
	for _, x := range []struct {
		f    Fields
		name string
	}{
		{FieldInvestmentType, "investment_type"},
		{FieldCostValue, "cost_value"},
		{FieldReferenceDate, "reference_date"},
		{FieldFundName, "fund_name"},
	} {
		if f.Has(x.f) {
			names = append(names, x.name)
		}
	}
	return strings.Join(names, ",")
}

// PositionRecord is one offshore holding line of a fund portfolio.
type PositionRecord struct {
	FundID         string // raw, as published
	InvestmentType string
	MarketValue    decimal.NullDecimal
	CostValue      decimal.NullDecimal
	ReferenceDate  date.Date
	FundName       string
}

// Positions is a loaded position table.
type Positions struct {
	Records []PositionRecord
	Fields  Fields
}

// FundRegistryEntry is one fund of the fund registry.
type FundRegistryEntry struct {
	FundID            string
	FundName          string
	AdministratorID   string
	AdministratorName string
	ManagerID         string
	ManagerName       string
}

// Entity returns the raw identifier and name of the entity playing role for this fund.
func (e FundRegistryEntry) Entity(role Role) (id, name string) {
	if role == RoleAdministrator {
		return e.AdministratorID, e.AdministratorName
	}
	return e.ManagerID, e.ManagerName
}

// ManagerRegistryEntry is one legal entity authorized to administer or manage portfolios.
type ManagerRegistryEntry struct {
	ID         string
	Name       string
	City       string
	State      string
	Street     string
	District   string
	PostalCode string
}

// Role selects which fund counterpart the analysis aggregates by.
type Role int

const (
	RoleManager Role = iota
	RoleAdministrator
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleAdministrator:
		return "administrator"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole parses "manager" (alias "gestor") or "administrator" (alias "administrador").
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manager", "gestor":
		return RoleManager, nil
	case "administrator", "admin", "administrador":
		return RoleAdministrator, nil
	default:
		return RoleManager, fmt.Errorf("unknown role %q want manager or administrator", s)
	}
}
