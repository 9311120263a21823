package cvm

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/date"
	"github.com/google/go-cmp/cmp"
)

func TestReadPositions(t *testing.T) {
	const input = `TP_FUNDO_CLASSE;CNPJ_FUNDO_CLASSE;DENOM_SOCIAL;DT_COMPTC;TP_APLIC;VL_MERC_POS_FINAL;VL_CUSTO_POS_FINAL
FI;12.345.678/0001-90;ALPHA FIM;2025-08-31;Investimento no Exterior;1000.50;900
FI;12.345.678/0001-90;ALPHA FIM;2025-08-31;Investimento no Exterior;;
FI;broken row
FI;1234567890123;BETA;;Outros;12,5;abc
`
	p, stats, err := ReadPositions(strings.NewReader(input), DefaultSchema().Positions, Options{Encoding: UTF8})
	if err != nil {
		t.Fatalf("ReadPositions() error = %v", err)
	}
	want := offshore.FieldInvestmentType | offshore.FieldCostValue | offshore.FieldReferenceDate | offshore.FieldFundName
	if p.Fields != want {
		t.Errorf("Fields = %v, want %v", p.Fields, want)
	}
	if stats.Rows != 3 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 3 rows, 1 skipped", stats)
	}
	if len(p.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(p.Records))
	}

	first := p.Records[0]
	if first.FundID != "12.345.678/0001-90" || first.FundName != "ALPHA FIM" || first.InvestmentType != "Investimento no Exterior" {
		t.Errorf("Records[0] = %+v", first)
	}
	if first.ReferenceDate != date.New(2025, time.August, 31) {
		t.Errorf("Records[0].ReferenceDate = %v", first.ReferenceDate)
	}
	if got := first.MarketValue.Decimal.String(); !first.MarketValue.Valid || got != "1000.5" {
		t.Errorf("Records[0].MarketValue = %v", first.MarketValue)
	}
	if p.Records[1].MarketValue.Valid || p.Records[1].CostValue.Valid {
		t.Errorf("Records[1] values should be null: %+v", p.Records[1])
	}
	last := p.Records[2]
	if got := last.MarketValue.Decimal.String(); got != "12.5" {
		t.Errorf("comma decimal = %s, want 12.5", got)
	}
	if last.CostValue.Valid || !last.ReferenceDate.IsZero() {
		t.Errorf("Records[2] = %+v, want null cost and zero date", last)
	}
}

func TestReadPositions_OptionalColumnsAbsent(t *testing.T) {
	const input = "CNPJ_FUNDO;VL_MERC_POS_FINAL\n11;5\n"
	p, _, err := ReadPositions(strings.NewReader(input), DefaultSchema().Positions, Options{})
	if err != nil {
		t.Fatalf("ReadPositions() error = %v", err)
	}
	if p.Fields != 0 {
		t.Errorf("Fields = %v, want none", p.Fields)
	}
	if len(p.Records) != 1 || p.Records[0].FundID != "11" {
		t.Errorf("Records = %+v", p.Records)
	}
}

func TestReadPositions_MissingColumn(t *testing.T) {
	const input = "CNPJ_FUNDO_CLASSE;VL_CUSTO_POS_FINAL\n11;5\n"
	_, _, err := ReadPositions(strings.NewReader(input), DefaultSchema().Positions, Options{})

	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("ReadPositions() error = %v, want a MissingColumnError", err)
	}
	if missing.Dataset != PositionsDataset || missing.Field != FieldMarketValue {
		t.Errorf("MissingColumnError = %+v", missing)
	}
}

func TestReadPositions_Empty(t *testing.T) {
	_, _, err := ReadPositions(strings.NewReader(""), DefaultSchema().Positions, Options{})
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("ReadPositions() error = %v, want %v", err, ErrNoHeader)
	}
}

func TestReadFunds(t *testing.T) {
	// the recent registry spells the fund column in upper case, the older one does not.
	const input = "CNPJ_FUNDO;DENOM_SOCIAL;CNPJ_Administrador;Administrador;CPF_CNPJ_Gestor;Gestor\n" +
		"11.111.111/0001-11;FUNDO A;22.222.222/0001-22;ADM;33.333.333/0001-33;GESTORA\n"
	funds, _, err := ReadFunds(strings.NewReader(input), DefaultSchema().Funds, Options{Encoding: UTF8})
	if err != nil {
		t.Fatalf("ReadFunds() error = %v", err)
	}
	want := []offshore.FundRegistryEntry{{
		FundID:            "11.111.111/0001-11",
		FundName:          "FUNDO A",
		AdministratorID:   "22.222.222/0001-22",
		AdministratorName: "ADM",
		ManagerID:         "33.333.333/0001-33",
		ManagerName:       "GESTORA",
	}}
	if diff := cmp.Diff(want, funds); diff != "" {
		t.Errorf("ReadFunds() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadManagers_Latin1(t *testing.T) {
	// "São Paulo" and "Gestão" in ISO 8859-1.
	const input = "CNPJ;DENOM_SOCIAL;MUN;UF\n" +
		"12345678000190;GEST\xc3O LTDA;S\xe3o Paulo;SP\n"
	managers, _, err := ReadManagers(strings.NewReader(input), DefaultSchema().Managers, Options{Encoding: Latin1})
	if err != nil {
		t.Fatalf("ReadManagers() error = %v", err)
	}
	want := []offshore.ManagerRegistryEntry{{ID: "12345678000190", Name: "GESTÃO LTDA", City: "São Paulo", State: "SP"}}
	if diff := cmp.Diff(want, managers); diff != "" {
		t.Errorf("ReadManagers() mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_Override(t *testing.T) {
	l, err := DefaultSchema().Positions.Override(map[string][]string{FieldMarketValue: {"VALOR"}})
	if err != nil {
		t.Fatalf("Override() error = %v", err)
	}
	p, _, err := ReadPositions(strings.NewReader("CNPJ_FUNDO;VALOR\n11;3\n"), l, Options{})
	if err != nil {
		t.Fatalf("ReadPositions() error = %v", err)
	}
	if len(p.Records) != 1 || p.Records[0].MarketValue.Decimal.String() != "3" {
		t.Errorf("Records = %+v", p.Records)
	}
	// the default layout is untouched
	if got := DefaultSchema().Positions.Columns[2].Candidates[0]; got != "VL_MERC_POS_FINAL" {
		t.Errorf("default candidates changed: %q", got)
	}

	if _, err := l.Override(map[string][]string{"volume": {"X"}}); err == nil {
		t.Errorf("Override(unknown field) succeeded, want an error")
	}
	if _, err := l.Override(map[string][]string{FieldFundID: nil}); err == nil {
		t.Errorf("Override(no candidates) succeeded, want an error")
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in      string
		want    Encoding
		wantErr bool
	}{
		{"", Latin1, false},
		{"ISO-8859-1", Latin1, false},
		{"utf-8", UTF8, false},
		{"cp1252", Latin1, true},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseEncoding(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestPositionsFile(t *testing.T) {
	if got, want := PositionsFile(date.NewMonth(2025, time.August)), "cda_fi_BLC_7_202508.csv"; got != want {
		t.Errorf("PositionsFile() = %q, want %q", got, want)
	}
}
