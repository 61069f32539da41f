package xlsexport

import "github.com/xuri/excelize/v2"

const (
	reportFontFamily = "Times New Roman"
	reportFontSize   = 11
)

// ширина колонок отчёта в порядке screeningHeaders
var screeningColWidths = []float64{30, 30, 15, 12, 16, 28}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// writeReportHeader пишет строку заголовков отчёта и настраивает ширину колонок.
func writeReportHeader(f *excelize.File, sheet string, headers []string) (int, error) {
	const row = 1
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Bold:   true,
			Family: reportFontFamily,
			Size:   reportFontSize,
		},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}

	for idx, header := range headers {
		colName, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return row, err
		}
		width := 25.0
		if idx < len(screeningColWidths) {
			width = screeningColWidths[idx]
		}
		if err = f.SetColWidth(sheet, colName, colName, width); err != nil {
			return row, err
		}
		if err = setCell(f, sheet, idx+1, row, header); err != nil {
			return row, err
		}
	}
	return row, nil
}

// styleReportRows выравнивает область данных под строкой заголовков.
func styleReportRows(f *excelize.File, sheet string, cols, rows int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Family: reportFontFamily,
			Size:   reportFontSize,
		},
	})
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, 2)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(cols, rows+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
