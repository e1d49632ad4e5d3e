package datatable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes a header of column names followed by one record per row.
// Values use the shortest representation that parses back exactly.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	for i := range t.Rows {
		rec := t.Record(i)
		row := make([]string, len(rec))
		for j, v := range rec {
			row[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV produced. The first numInputs columns are the
// swept inputs.
func ReadCSV(r io.Reader, numInputs int) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("datatable: missing csv header")
	}
	header := records[0]
	if numInputs < 0 || numInputs > len(header) {
		return nil, fmt.Errorf("datatable: %d inputs for %d columns", numInputs, len(header))
	}

	cols := make([]Column, len(header))
	for j, name := range header {
		cols[j] = Column{Name: name, Values: make([]float64, 0, len(records)-1)}
	}
	for i, rec := range records[1:] {
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("datatable: row %d column %q: %w", i+1, header[j], err)
			}
			cols[j].Values = append(cols[j].Values, v)
		}
	}
	return FromColumns(header[:numInputs], header[numInputs:], cols)
}
