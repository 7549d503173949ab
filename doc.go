// Package wts derives wholesale trade indicators from the monthly census
// extracts of U.S. merchant wholesalers (NAICS 42).
//
// The core functionalities include:
//   - Series: a monthly decimal time series, unique by month and chronological.
//   - Alignment: the inner join of the sales and inventories series on month.
//   - Metrics: the inventory-to-sales ratio and the year-over-year sales growth
//     of every aligned month, undefined values being kept as nulls.
//   - Encoding: the merged dataset CSV read by the charts and the dashboard.
//
// Parsing of the raw census extracts lives in package census, and the run
// itself in package pipeline. This package serves as the foundational logic
// for the `wts` command-line tool.
package wts
