package excel

// RawRow is one data row, positionally aligned with Table.Headers.
// Rows may be shorter or longer than the header.
type RawRow []string

// Table is a survey export before typing
type Table struct {
	Headers []string // Column headers, verbatim
	Rows    []RawRow // Data rows, blank lines removed
	Format  string   // "delimited" or "xlsx"
	Comma   rune     // Detected delimiter for delimited input
}

// Cell returns the cell under column i, or "" when the row is short.
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}
