package importer

import (
	"encoding/csv"
	"strings"
)

// Record is one CSV data row keyed by normalized header name.
type Record map[string]string

// parseRecords splits raw CSV text into records. The delimiter is
// inferred: any semicolon in the text selects ';', otherwise ','.
// Quoting is relaxed and rows may carry more or fewer cells than the
// header without failing the whole file.
func parseRecords(csvText string) ([]Record, error) {
	delimiter := ','
	if strings.Contains(csvText, ";") {
		delimiter = ';'
	}

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = normalizeKey(name)
	}

	var records []Record
	for _, row := range rows[1:] {
		record := make(Record, len(header))
		empty := true
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			value := strings.TrimSpace(cell)
			if value != "" {
				empty = false
			}
			record[header[i]] = value
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
