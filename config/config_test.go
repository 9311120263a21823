package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/cvm"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cvmoff.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", path, err)
		}
		if diff := cmp.Diff(Default(), c); diff != "" {
			t.Errorf("Load(%q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
role: administrator
topN: 50
investmentTypes: [Investimento no Exterior]
minMatchRate: 0.5
columns:
  positions:
    market_value: [VL_MERC]
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// unset keys keep their default
	if c.Currency != offshore.DefaultCurrency || c.Placeholder != offshore.DefaultPlaceholder {
		t.Errorf("defaults lost: %+v", c)
	}

	p, err := c.Pipeline(nil)
	if err != nil {
		t.Fatalf("Pipeline() error = %v", err)
	}
	if p.Role != offshore.RoleAdministrator || p.MinMatchRate != 0.5 || c.TopN != 50 {
		t.Errorf("Pipeline() = %+v", p)
	}
	if diff := cmp.Diff([]string{"Investimento no Exterior"}, p.InvestmentTypes); diff != "" {
		t.Errorf("InvestmentTypes mismatch (-want +got):\n%s", diff)
	}

	s, err := c.Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	for _, col := range s.Positions.Columns {
		if col.Field == cvm.FieldMarketValue && (len(col.Candidates) != 1 || col.Candidates[0] != "VL_MERC") {
			t.Errorf("market value candidates = %v, want [VL_MERC]", col.Candidates)
		}
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"role", "role: auditor", "unknown role"},
		{"encoding", "encoding: ebcdic", "unknown encoding"},
		{"match rate", "minMatchRate: 2", "minimum match rate"},
		{"column", "columns:\n  funds:\n    color: [X]", "no field"},
		{"yaml", "role: [", "failed to load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.InvestmentTypes = []string{"A", "B"}
	if err := Dump(path, want); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dump/Load mismatch (-want +got):\n%s", diff)
	}
}

func TestReadOptions(t *testing.T) {
	c := Default()
	c.Encoding = "utf-8"
	opts, err := c.ReadOptions()
	if err != nil || opts.Encoding != cvm.UTF8 {
		t.Errorf("ReadOptions() = %+v, %v", opts, err)
	}
}
