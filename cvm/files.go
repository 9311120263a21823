// Package cvm reads the open data files of the Brazilian securities
// regulator: the offshore block of the monthly portfolio disclosure, the
// fund registry and the portfolio manager registry.
//
// Files are semicolon delimited and Latin-1 encoded. Columns are looked up by
// name through a Layout, so renamed columns only need a configuration
// change.
package cvm

import "github.com/etnz/offshore/date"

// File names as published on the open data portal.
const (
	FundsFile    = "registro_fundo.csv"
	ManagersFile = "cad_adm_cart_pj.csv"
)

// PositionsFile returns the name of the offshore block of the portfolio
// disclosure for the competence month m.
func PositionsFile(m date.Month) string {
	return "cda_fi_BLC_7_" + m.String() + ".csv"
}
