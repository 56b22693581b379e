// Package csvrows implements a small, forgiving, quote aware CSV reader that returns rows
// keyed by the header row.
package csvrows

import (
	"errors"
	"io"
	"strings"
)

var errRead = errors.New("failed to read csv input")

// Record is a single data row keyed by header name.
type Record map[string]string

// Get returns the named field, or an empty string when it is absent.
func (r Record) Get(name string) string {
	return r[name]
}

// ParseReader reads all of reader and parses it with Parse.
func ParseReader(reader io.Reader) ([]Record, error) {
	body, errBody := io.ReadAll(reader)
	if errBody != nil {
		return nil, errors.Join(errBody, errRead)
	}

	return Parse(string(body)), nil
}

// Parse splits text into rows and maps every row after the first onto the header names.
// Quoted fields may contain commas and newlines and use "" for a literal quote. Carriage
// returns outside of quotes are ignored. Rows shorter than the header are padded with
// empty values.
func Parse(text string) []Record {
	rows := Rows(text)
	if len(rows) == 0 {
		return []Record{}
	}

	header := make([]string, len(rows[0]))
	for idx, name := range rows[0] {
		header[idx] = strings.TrimSpace(name)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(header))
		for idx, name := range header {
			if idx < len(row) {
				record[name] = row[idx]
			} else {
				record[name] = ""
			}
		}

		records = append(records, record)
	}

	return records
}

// Rows splits text into raw rows of fields without header handling.
func Rows(text string) [][]string {
	var (
		rows     [][]string
		current  []string
		field    strings.Builder
		inQuotes bool
		runes    = []rune(text)
	)

	for idx := 0; idx < len(runes); idx++ {
		char := runes[idx]

		if inQuotes {
			if char == '"' {
				if idx+1 < len(runes) && runes[idx+1] == '"' {
					field.WriteRune('"')
					idx++

					continue
				}

				inQuotes = false

				continue
			}

			field.WriteRune(char)

			continue
		}

		switch char {
		case '"':
			inQuotes = true
		case ',':
			current = append(current, field.String())
			field.Reset()
		case '\r':
		case '\n':
			current = append(current, field.String())
			field.Reset()
			rows = append(rows, current)
			current = nil
		default:
			field.WriteRune(char)
		}
	}

	if field.Len() > 0 || len(current) > 0 {
		current = append(current, field.String())
		rows = append(rows, current)
	}

	return rows
}
