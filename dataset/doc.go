// Package dataset reads the SLCSP reference datasets and request list, and
// writes the resolved zipcode,rate table.
//
// Plans and zips can come from headered CSV files, from Parquet files in the
// PlanRow/ZipRow layout, or from the plans/zips tables in PostgreSQL.
// Parsing is strict: a non-numeric rate or rate_area fails the read with a
// *RowError rather than being skipped.
package dataset
