package explain

import "strings"

// optionalColumns are appended to the table in this order when populated.
var optionalColumns = []string{ColPM, ColTeam, ColContact, ColLink}

// FormatTable renders a matched glossary row as a two-column markdown table.
// The term and its definition form the header row; PM, Team, Contact and
// Link follow as label/value rows when their cells are populated.
func FormatTable(row Row) string {
	var b strings.Builder

	b.WriteString("| ")
	b.WriteString(sanitizeCell(row[ColExplain]))
	b.WriteString(" | ")
	b.WriteString(sanitizeCell(row[ColDefinition]))
	b.WriteString(" |\n|---|---|\n")

	for _, col := range optionalColumns {
		if cellEmpty(row[col]) {
			continue
		}
		b.WriteString("| ")
		b.WriteString(col)
		b.WriteString(" | ")
		b.WriteString(sanitizeCell(row[col]))
		b.WriteString(" |\n")
	}

	return b.String()
}

// cellEmpty reports whether a cell should be omitted from the table. Only
// blank cells and the literal "n/a" (any case) are omitted; values like "0"
// are kept.
func cellEmpty(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "n/a")
}

// sanitizeCell strips line breaks and surrounding whitespace so a multi-line
// spreadsheet cell cannot break the markdown table layout.
func sanitizeCell(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	v = strings.ReplaceAll(v, "\n", "")
	return strings.TrimSpace(v)
}
