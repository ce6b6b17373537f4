package publisher

import (
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/anishpatel/jobsheet/internal/model"
)

// Fixed formatting ranges. Shading covers rows 2..100 no matter how many rows
// were written.
const (
	headerRange  = "A1:G1"
	shadedRange  = "A2:G100"
	shadedEndRow = 100
)

var (
	headerGray = &sheets.Color{Red: 0.88, Green: 0.88, Blue: 0.88}
	rowGreen   = &sheets.Color{Red: 0.96, Green: 1, Blue: 0.96}
)

// formatStep is one independently applied formatting operation.
type formatStep struct {
	name     string
	column   string // set for per-column width steps
	requests []*sheets.Request
}

// numColumns is the fixed width of the table (A..G).
var numColumns = int64(len(model.Header))

// formatPlan returns the formatting steps in the order they are applied.
func formatPlan(sheetID int64, columnWidth int64) []formatStep {
	steps := []formatStep{
		{name: "freeze header row", requests: []*sheets.Request{freezeRows(sheetID, 1)}},
		{name: "style header " + headerRange, requests: []*sheets.Request{headerStyle(sheetID)}},
	}
	for col := int64(0); col < numColumns; col++ {
		letter := columnLetter(col)
		steps = append(steps, formatStep{
			name:     fmt.Sprintf("width column %s", letter),
			column:   letter,
			requests: []*sheets.Request{columnWidthRequest(sheetID, col, columnWidth)},
		})
	}
	steps = append(steps, formatStep{name: "shade rows " + shadedRange, requests: []*sheets.Request{rowShading(sheetID)}})
	return steps
}

func freezeRows(sheetID int64, rows int64) *sheets.Request {
	return &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:         sheetID,
				GridProperties:  &sheets.GridProperties{FrozenRowCount: rows},
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "gridProperties.frozenRowCount",
		},
	}
}

func headerStyle(sheetID int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gridRange(sheetID, 0, 1),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					TextFormat:      &sheets.TextFormat{Bold: true},
					BackgroundColor: headerGray,
				},
			},
			Fields: "userEnteredFormat.textFormat.bold,userEnteredFormat.backgroundColor",
		},
	}
}

func rowShading(sheetID int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: gridRange(sheetID, 1, shadedEndRow),
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{BackgroundColor: rowGreen},
			},
			Fields: "userEnteredFormat.backgroundColor",
		},
	}
}

func columnWidthRequest(sheetID, col, width int64) *sheets.Request {
	return &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:         sheetID,
				Dimension:       "COLUMNS",
				StartIndex:      col,
				EndIndex:        col + 1,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
			Properties: &sheets.DimensionProperties{PixelSize: width},
			Fields:     "pixelSize",
		},
	}
}

// gridRange covers columns A..G for rows [startRow, endRow), zero-based.
func gridRange(sheetID, startRow, endRow int64) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    startRow,
		EndRowIndex:      endRow,
		StartColumnIndex: 0,
		EndColumnIndex:   numColumns,
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

// columnLetter maps a zero-based column index to its A1 letter(s).
func columnLetter(col int64) string {
	s := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		s = string(rune('A'+(n-1)%26)) + s
	}
	return s
}
