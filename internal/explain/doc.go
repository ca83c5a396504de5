// Package explain implements the /explain slash command lookup logic.
//
// Definitions live in a Google Spreadsheet maintained by the team: the
// "Explain" sheet maps terms (and comma-separated aliases) to definitions
// plus optional ownership columns, and the "Why" sheet holds one-liners
// returned for the special query "why".
//
// The package is decoupled from the spreadsheet backend through the
// SheetSource interface, so the matching and formatting logic is testable
// without a live Sheets API. Rows are fetched fresh on every lookup; nothing
// is cached or persisted.
package explain
