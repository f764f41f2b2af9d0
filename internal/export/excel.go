// Package export renders a scan result as an Excel workbook.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"snapscout/internal/scout"
)

const (
	resultsSheet   = "Results"
	dashboardSheet = "Dashboard"
)

// Workbook builds an Excel workbook with a Results sheet listing every row
// and, when minima are present, a Dashboard sheet with the cheapest listing
// per country.
func Workbook(result *scout.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	writeRow(f, resultsSheet, 1, []any{"Country", "Title", "Total (" + result.Home + ")", "Local Breakdown", "Link", "Date"})
	for i, row := range result.Rows {
		writeRow(f, resultsSheet, i+2, []any{row.Country, row.Title, row.Total, row.Breakdown, row.Link, row.Date})
	}

	if len(result.Minima) > 0 {
		if _, err := f.NewSheet(dashboardSheet); err != nil {
			return nil, fmt.Errorf("failed to add dashboard sheet: %w", err)
		}
		writeRow(f, dashboardSheet, 1, []any{"Country", "Cheapest", "Title", "Link"})

		labels := make([]string, 0, len(result.Minima))
		for label := range result.Minima {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for i, label := range labels {
			summary := result.Minima[label]
			if summary.Found {
				writeRow(f, dashboardSheet, i+2, []any{label, summary.Total, summary.Title, summary.Link})
			} else {
				writeRow(f, dashboardSheet, i+2, []any{label, "none", "", ""})
			}
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, value)
	}
}
