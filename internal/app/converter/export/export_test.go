package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"wavify/internal/app/model"
)

func TestToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.xlsx")
	records := []model.ConversionRecord{
		{
			ID:          "b",
			Filename:    "song.mp3",
			ConvertedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Mode:        model.ModeWaveform,
			Status:      model.StatusCompleted,
			DurationMs:  1500,
		},
		{
			ID:           "a",
			Filename:     "talk.mp3",
			ConvertedAt:  time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
			Mode:         model.ModeTranscript,
			Status:       model.StatusFailed,
			FailedStage:  "transcribe",
			ErrorMessage: "whisper timed out after 10m0s",
		},
	}

	require.NoError(t, ToExcel(records, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Conversions", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Filename", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "song.mp3", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "2024-05-01T12:00:00Z", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "1500", sheet.Rows[1].Cells[6].Value)
	assert.Equal(t, "transcribe", sheet.Rows[2].Cells[5].Value)
}

func TestToExcel_BadPath(t *testing.T) {
	err := ToExcel(nil, filepath.Join(t.TempDir(), "missing", "dir", "records.xlsx"))
	assert.Error(t, err)
}
