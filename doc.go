// Package offshore reconciles the offshore position disclosures of Brazilian
// investment funds with the fund and portfolio-manager registries published
// by the CVM, and ranks the managing entities by offshore assets.
//
// The core functionalities include:
//   - Identifier normalization: CNPJ/CPF values written as floats, in
//     exponential notation or with punctuation all reduce to one 14-digit ID.
//   - Entity matching: registries are joined by identifier first and by legal
//     name when identifiers do not match at all.
//   - Aggregation: positions are summed by fund, then funds by entity, keeping
//     unresolved funds in a placeholder bucket instead of dropping them.
//   - Ranking: entities are ordered by market value and get their share of
//     the total.
//
// Pipeline runs these stages in order over datasets loaded by the cvm
// package, and the resulting Analysis is rendered by the renderer package or
// exported with EncodeCSV, EncodeJSON and EncodeXLSX.
package offshore
