package storage

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/whatif/internal/experiment"
)

type ExportTable struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

type ExportData struct {
	ID        string        `json:"id"`
	Model     string        `json:"model"`
	Timestamp time.Time     `json:"timestamp"`
	Params    Values        `json:"params"`
	Outputs   Values        `json:"outputs"`
	Tables    []ExportTable `json:"tables"`
	GoalSeeks []SeekRecord  `json:"goal_seeks"`
}

func NewExportData(meta *RunMetadata, tables []experiment.NamedTable) ExportData {
	data := ExportData{
		ID:        meta.ID,
		Model:     meta.Model,
		Timestamp: meta.Timestamp,
		Params:    meta.Params,
		Outputs:   meta.Outputs,
		Tables:    make([]ExportTable, len(tables)),
		GoalSeeks: meta.GoalSeeks,
	}
	for i, nt := range tables {
		et := ExportTable{
			Name:    nt.Name,
			Columns: nt.Table.Columns(),
			Rows:    make([]Record, nt.Table.Len()),
		}
		for r := range et.Rows {
			et.Rows[r] = nt.Table.Record(r)
		}
		data.Tables[i] = et
	}
	return data
}

func ExportJSON(w io.Writer, meta *RunMetadata, tables []experiment.NamedTable) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, tables))
}

func ExportJSONFile(path string, meta *RunMetadata, tables []experiment.NamedTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, meta, tables)
}
