// Package sheets provides a read-only client for the team glossary
// spreadsheet.
//
// This package wraps the Google Sheets API (sheets/v4) behind the narrow
// explain.SheetSource interface: load the rows of a named sheet. The client
// authenticates with a service account (JWT flow, no interactive OAuth) and
// optionally routes outbound calls through an HTTP proxy.
//
// The first row of every sheet is treated as the header row; remaining rows
// are returned as column-name to value maps.
package sheets
