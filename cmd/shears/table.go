package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableView builds the rounded tables the CLI prints. Columns default to
// left alignment; numeric columns opt into right alignment. Short rows are
// padded to the header width so ragged input cannot skew the layout.
type tableView struct {
	tw      table.Writer
	columns int
	aligns  []text.Align
}

func newTableView(headers ...string) *tableView {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	aligns := make([]text.Align, len(headers))
	for i, h := range headers {
		header[i] = h
		aligns[i] = text.AlignLeft
	}
	tw.AppendHeader(header)

	return &tableView{tw: tw, columns: len(headers), aligns: aligns}
}

// rightAlign marks the given zero-based columns as numeric.
func (v *tableView) rightAlign(columns ...int) *tableView {
	for _, c := range columns {
		if c >= 0 && c < v.columns {
			v.aligns[c] = text.AlignRight
		}
	}
	return v
}

func (v *tableView) addRow(cells ...string) {
	row := make(table.Row, v.columns)
	for i := 0; i < v.columns; i++ {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	v.tw.AppendRow(row)
}

func (v *tableView) render() string {
	configs := make([]table.ColumnConfig, 0, v.columns)
	for i, align := range v.aligns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	v.tw.SetColumnConfigs(configs)
	return v.tw.Render()
}
