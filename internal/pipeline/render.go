package pipeline

import (
	"html"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableCSSClass is the class attribute of rendered tables.
const TableCSSClass = "csvgallery"

// HTMLRenderer defines the contract for turning a View into an HTML table.
type HTMLRenderer interface {
	RenderHTML(view *View) string
}

// TableRenderer renders views with go-pretty's HTML writer.
type TableRenderer struct {
	CSSClass string // "" = TableCSSClass
}

// RenderHTML returns a <table> fragment. Image markup is embedded as-is;
// display names are escaped. There is no index column.
func (r *TableRenderer) RenderHTML(view *View) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)

	style := t.Style()
	style.Format.Header = text.FormatDefault
	style.HTML.EscapeText = false
	style.HTML.CSSClass = TableCSSClass
	if r.CSSClass != "" {
		style.HTML.CSSClass = r.CSSClass
	}

	// Pinned so empty tables are not aligned as numeric columns.
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	t.AppendHeader(table.Row{html.EscapeString(view.Headers.Image), html.EscapeString(view.Headers.Name)})
	for _, row := range view.Rows {
		t.AppendRow(table.Row{string(row.Image), html.EscapeString(row.Name)})
	}

	return t.RenderHTML()
}
