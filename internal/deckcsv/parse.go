// Package deckcsv reads and writes the CSV format used to exchange decks and cards.
//
// The dialect is RFC 4180-like: fields are separated by commas, rows by
// newlines, and a double quote toggles quoted mode in which commas and
// newlines are literal and "" stands for one quote. Carriage returns are
// ignored everywhere. Each field is trimmed of surrounding whitespace after
// unquoting and blank rows are dropped.
package deckcsv

import (
	"strings"
)

const utf8BOM = "\uFEFF"

// FormatError reports a structural problem that makes the whole file unusable.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}

// Parse splits content into rows of trimmed fields. It fails with a *FormatError unless there is
// a header row and at least one data row.
func Parse(content string) ([][]string, error) {
	content = strings.TrimPrefix(strings.ToValidUTF8(content, "\uFFFD"), utf8BOM)

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)
	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(content) && content[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == '\r':
		case c == ',' && !inQuotes:
			endField()
		case c == '\n' && !inQuotes:
			endRow()
		default:
			field.WriteByte(c)
		}
	}
	// An unterminated quote keeps whatever was read up to the end of the file.
	endRow()

	if len(rows) < 2 {
		return nil, &FormatError{Msg: "CSV file must contain a header row and at least one data row"}
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
