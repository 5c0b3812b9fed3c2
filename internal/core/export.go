package core

// export.go projects records into CSV artifacts.
//
// The header row is taken from the first row's column names in order; every
// following row is written in header order, looking columns up by name so
// rows with a different column order still line up. Quoting follows RFC 4180:
// values containing the delimiter, a quote, or a line break are quoted and
// embedded quotes are doubled.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Column is one named value in an export row.
type Column struct {
	Name  string
	Value any
}

// ExportRow is an ordered mapping of human-readable column name to scalar value.
type ExportRow []Column

// Get returns the value of the named column.
func (r ExportRow) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (r ExportRow) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// DateLayout is the layout used for date values in exports and file names.
const DateLayout = "2006-01-02"

// FormatValue renders a scalar export value as text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(DateLayout)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// WriteCSV writes a header plus one line per row and returns the number of data rows written.
// Writing zero rows produces no output at all.
func WriteCSV(w io.Writer, rows []ExportRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	header := rows[0].Names()
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for n, row := range rows {
		for i, col := range header {
			v, _ := row.Get(col)
			record[i] = FormatValue(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return n, fmt.Errorf("write row %d: %w", n+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return len(rows), fmt.Errorf("flush csv: %w", err)
	}
	return len(rows), nil
}

// File is a generated download artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// CSVExporter builds CSV download artifacts.
type CSVExporter struct {
	Now func() time.Time // defaults to time.Now
}

// FileName returns "<baseName>-<YYYY-MM-DD>.csv" for the given time.
func FileName(baseName string, t time.Time) string {
	return fmt.Sprintf("%s-%s.csv", baseName, t.Format(DateLayout))
}

// Export renders rows as a CSV file named after baseName and today's date.
// Returns false, and no file, when rows is empty.
func (e CSVExporter) Export(rows []ExportRow, baseName string) (File, bool, error) {
	if len(rows) == 0 {
		return File{}, false, nil
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	var buf bytes.Buffer
	n, err := WriteCSV(&buf, rows)
	if err != nil {
		return File{}, false, fmt.Errorf("export %s: %w", baseName, err)
	}

	return File{
		Name:        FileName(baseName, now()),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
		Rows:        n,
	}, true, nil
}
