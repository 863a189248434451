// pkg/output/table.go

package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/hardening"
)

// TableWriter provides a fluent interface for building and displaying tables
type TableWriter struct {
	writer    *tabwriter.Writer
	headers   []string
	rows      [][]string
	separator string
}

// NewTableTo creates a new table writer that outputs to w
func NewTableTo(w io.Writer) *TableWriter {
	return &TableWriter{
		writer:    tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		separator: "-",
	}
}

// WithHeaders sets the column headers for the table
func (t *TableWriter) WithHeaders(headers ...string) *TableWriter {
	t.headers = headers
	return t
}

// AddRow adds a row of data to the table
func (t *TableWriter) AddRow(values ...string) *TableWriter {
	t.rows = append(t.rows, values)
	return t
}

// Render outputs the table to the writer
func (t *TableWriter) Render() error {
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, strings.Join(t.headers, "\t"))
		separators := make([]string, len(t.headers))
		for i, h := range t.headers {
			separators[i] = strings.Repeat(t.separator, len(h))
		}
		fmt.Fprintln(t.writer, strings.Join(separators, "\t"))
	}

	for _, row := range t.rows {
		fmt.Fprintln(t.writer, strings.Join(row, "\t"))
	}

	return t.writer.Flush()
}

// InventoryTable renders one row per target.
func InventoryTable(w io.Writer, inv *hardening.Inventory) error {
	if inv.ListError != "" {
		fmt.Fprintf(w, "⚠️  Could not list unit files: %s\n", inv.ListError)
	}

	table := NewTableTo(w).WithHeaders("SERVICE", "UNIT", "INSTALLED", "UNIT FILE", "ACTIVE", "ENABLED")
	for _, s := range inv.Services {
		installed := "no"
		if s.Installed {
			installed = "yes"
		}
		table.AddRow(s.Service, s.Unit, installed, dash(s.UnitFileState), dash(s.Active), dash(s.Enabled))
	}
	return table.Render()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
