package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"

	"wavify/internal/app/model"
)

var header = []string{"ID", "Filename", "Converted At", "Mode", "Status", "Failed Stage", "Duration (ms)", "Error Message"}

// ToExcel writes records to a single-sheet workbook at outputFilePath.
func ToExcel(records []model.ConversionRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Conversions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range header {
		headerRow.AddCell().Value = title
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.Filename
		row.AddCell().Value = r.ConvertedAt.UTC().Format(time.RFC3339)
		row.AddCell().Value = r.Mode
		row.AddCell().Value = r.Status
		row.AddCell().Value = r.FailedStage
		row.AddCell().Value = strconv.FormatInt(r.DurationMs, 10)
		row.AddCell().Value = r.ErrorMessage
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
