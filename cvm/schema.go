package cvm

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset names.
const (
	PositionsDataset = "positions"
	FundsDataset     = "funds"
	ManagersDataset  = "managers"
)

// Field names, as used by configuration overrides.
const (
	FieldFundID            = "fund_id"
	FieldInvestmentType    = "investment_type"
	FieldMarketValue       = "market_value"
	FieldCostValue         = "cost_value"
	FieldReferenceDate     = "reference_date"
	FieldFundName          = "fund_name"
	FieldAdministratorID   = "administrator_id"
	FieldAdministratorName = "administrator_name"
	FieldManagerID         = "manager_id"
	FieldManagerName       = "manager_name"
	FieldID                = "id"
	FieldName              = "name"
	FieldCity              = "city"
	FieldState             = "state"
	FieldStreet            = "street"
	FieldDistrict          = "district"
	FieldPostalCode        = "postal_code"
)

// Column maps a field to the column names it may be published under, in
// priority order.
type Column struct {
	Field      string
	Candidates []string
	Required   bool
}

// Layout is the column layout of one dataset.
type Layout struct {
	Dataset string
	Columns []Column
}

// Schema holds the layouts of the three datasets.
type Schema struct {
	Positions Layout
	Funds     Layout
	Managers  Layout
}

// DefaultSchema returns the layouts of the files as currently published.
func DefaultSchema() Schema {
	return Schema{
		Positions: Layout{Dataset: PositionsDataset, Columns: []Column{
			{FieldFundID, []string{"CNPJ_FUNDO_CLASSE", "CNPJ_FUNDO"}, true},
			{FieldInvestmentType, []string{"TP_APLIC", "TP_ATIVO"}, false},
			{FieldMarketValue, []string{"VL_MERC_POS_FINAL"}, true},
			{FieldCostValue, []string{"VL_CUSTO_POS_FINAL"}, false},
			{FieldReferenceDate, []string{"DT_COMPTC"}, false},
			{FieldFundName, []string{"DENOM_SOCIAL"}, false},
		}},
		Funds: Layout{Dataset: FundsDataset, Columns: []Column{
			{FieldFundID, []string{"CNPJ_Fundo", "CNPJ_FUNDO"}, true},
			{FieldFundName, []string{"Denominacao_Social", "DENOM_SOCIAL"}, false},
			{FieldAdministratorID, []string{"CNPJ_Administrador"}, false},
			{FieldAdministratorName, []string{"Administrador"}, false},
			{FieldManagerID, []string{"CPF_CNPJ_Gestor"}, false},
			{FieldManagerName, []string{"Gestor"}, false},
		}},
		Managers: Layout{Dataset: ManagersDataset, Columns: []Column{
			{FieldID, []string{"CNPJ"}, true},
			{FieldName, []string{"DENOM_SOCIAL"}, false},
			{FieldCity, []string{"MUN"}, false},
			{FieldState, []string{"UF"}, false},
			{FieldStreet, []string{"LOGRADOURO"}, false},
			{FieldDistrict, []string{"BAIRRO"}, false},
			{FieldPostalCode, []string{"CEP"}, false},
		}},
	}
}

// Override replaces the candidates of the given fields. Unknown fields are an error.
func (l Layout) Override(candidates map[string][]string) (Layout, error) {
	out := Layout{Dataset: l.Dataset, Columns: make([]Column, len(l.Columns))}
	copy(out.Columns, l.Columns)

	fields := make([]string, 0, len(candidates))
	for f := range candidates {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		i := out.index(f)
		if i < 0 {
			return l, fmt.Errorf("%s has no field %q", l.Dataset, f)
		}
		if len(candidates[f]) == 0 {
			return l, fmt.Errorf("%s field %q needs at least one column name", l.Dataset, f)
		}
		out.Columns[i].Candidates = append([]string(nil), candidates[f]...)
	}
	return out, nil
}

func (l Layout) index(field string) int {
	for i, c := range l.Columns {
		if c.Field == field {
			return i
		}
	}
	return -1
}

// MissingColumnError reports a required field none of whose candidate
// columns is present.
type MissingColumnError struct {
	Dataset    string
	Field      string
	Candidates []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s file has no %s column (tried %s)", e.Dataset, e.Field, strings.Join(e.Candidates, ", "))
}

// headerKey compares column names trimmed, case insensitively and without the
// byte order mark some exports start with.
func headerKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// resolve finds the column index of every field: the first candidate present
// in header wins. Absent optional fields are not in the result.
func (l Layout) resolve(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, dup := positions[k]; !dup {
			positions[k] = i
		}
	}
	cols := make(map[string]int, len(l.Columns))
	for _, c := range l.Columns {
		for _, name := range c.Candidates {
			if i, ok := positions[headerKey(name)]; ok {
				cols[c.Field] = i
				break
			}
		}
		if _, ok := cols[c.Field]; !ok && c.Required {
			return nil, &MissingColumnError{Dataset: l.Dataset, Field: c.Field, Candidates: c.Candidates}
		}
	}
	return cols, nil
}
