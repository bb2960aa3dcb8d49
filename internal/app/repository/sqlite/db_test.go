package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavify/internal/app/model"
)

func TestOpen_RecordAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "wavify.db")

	store, err := Open(ctx, path, "conversions")
	require.NoError(t, err)
	defer store.Close()

	assert.FileExists(t, path)
	require.NoError(t, store.Ping(ctx))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		_, err := store.Record(ctx, &model.ConversionRecord{
			Filename:    name,
			ConvertedAt: base.Add(time.Duration(i) * time.Minute),
			Mode:        model.ModeWaveform,
			Status:      model.StatusCompleted,
			DurationMs:  int64(100 * (i + 1)),
		})
		require.NoError(t, err)
	}

	records, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c.mp3", records[0].Filename)
	assert.Equal(t, "b.mp3", records[1].Filename)
	assert.Equal(t, int64(300), records[0].DurationMs)

	records, err = store.List(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.mp3", records[0].Filename)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wavify.db")

	store, err := Open(ctx, path, "conversions")
	require.NoError(t, err)
	_, err = store.Record(ctx, &model.ConversionRecord{Filename: "a.mp3", ConvertedAt: time.Now(), Mode: model.ModeWaveform, Status: model.StatusCompleted})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path, "conversions")
	require.NoError(t, err)
	defer store.Close()

	records, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
