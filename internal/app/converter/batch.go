package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"wavify/internal/app/model"
	"wavify/internal/app/util/files"
)

// ProgressConfig controls the terminal progress bar of a batch run.
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// BatchItem is the outcome for one input file.
type BatchItem struct {
	Input  string
	Output string
	Err    error
}

// BatchSummary collects the outcome of a batch run in input order.
type BatchSummary struct {
	Items     []BatchItem
	Succeeded int
	Failed    int
}

// BatchConverter feeds local files through a Pipeline with bounded
// parallelism and writes each result next to the others in an output directory.
type BatchConverter struct {
	pipeline *Pipeline
	progress ProgressConfig
	log      *zap.Logger
}

// NewBatchConverter creates a BatchConverter.
func NewBatchConverter(pipeline *Pipeline, progress ProgressConfig, log *zap.Logger) *BatchConverter {
	if progress.Writer == nil {
		progress.Writer = os.Stderr
	}
	return &BatchConverter{pipeline: pipeline, progress: progress, log: log.With(zap.String("component", "batch"))}
}

// ConvertFiles converts every file, at most parallel at a time. A failing
// file does not stop the others; ctx cancellation does.
func (b *BatchConverter) ConvertFiles(ctx context.Context, inputs []model.FileInfo, outputDir string, parallel int) (*BatchSummary, error) {
	if err := files.EnsureDir(outputDir); err != nil {
		return nil, err
	}
	if parallel < 1 {
		parallel = 1
	}

	summary := &BatchSummary{Items: make([]BatchItem, len(inputs))}
	if len(inputs) == 0 {
		return summary, nil
	}

	bases := outputBases(inputs)
	bar, wait := b.newBar(len(inputs))
	defer wait()

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)

	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in model.FileInfo) {
			defer wg.Done()
			defer bar.Increment()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				summary.Items[i] = BatchItem{Input: in.FullPath, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			output, err := b.convertOne(ctx, in, outputDir, bases[i])
			summary.Items[i] = BatchItem{Input: in.FullPath, Output: output, Err: err}
			if err != nil {
				b.log.Warn("failed to convert file", zap.String("file", in.Name), zap.Error(err))
				return
			}
			b.log.Info("converted file", zap.String("file", in.Name), zap.String("output", output))
		}(i, in)
	}
	wg.Wait()

	for _, item := range summary.Items {
		if item.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary, ctx.Err()
}

func (b *BatchConverter) convertOne(ctx context.Context, in model.FileInfo, outputDir, base string) (string, error) {
	res, err := b.pipeline.ConvertFile(ctx, in.FullPath, "batch-"+base)
	if err != nil {
		return "", err
	}

	var (
		output string
		data   []byte
	)
	if res.Kind == model.ModeTranscript {
		output = filepath.Join(outputDir, base+".txt")
		data = []byte(res.Transcript + "\n")
	} else {
		output = filepath.Join(outputDir, base+filepath.Ext(res.Filename))
		data = res.Audio
	}
	if err := writeExclusive(output, data); err != nil {
		return "", fmt.Errorf("write %s: %w", output, err)
	}
	return output, nil
}

// outputBases assigns every input a distinct output base name. Inputs that
// share a name get a numeric suffix in input order: x, x-1, x-2.
func outputBases(inputs []model.FileInfo) []string {
	bases := make([]string, len(inputs))
	used := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		stem := strings.TrimSuffix(WaveformFilename(in.Name), ".wav")
		base := stem
		for n := 1; used[strings.ToLower(base)]; n++ {
			base = fmt.Sprintf("%s-%d", stem, n)
		}
		used[strings.ToLower(base)] = true
		bases[i] = base
	}
	return bases
}

// writeExclusive refuses to replace an existing output.
func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// progressBar hides whether the bar is actually rendered.
type progressBar struct {
	bar *mpb.Bar
}

func (pb progressBar) Increment() {
	if pb.bar != nil {
		pb.bar.Increment()
	}
}

func (b *BatchConverter) newBar(total int) (progressBar, func()) {
	if !b.progress.Enabled {
		return progressBar{}, func() {}
	}

	container := mpb.New(
		mpb.WithOutput(b.progress.Writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	description := "Converting " + b.pipeline.Mode()
	bar := container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
		),
	)
	return progressBar{bar: bar}, container.Wait
}

// ShouldShowProgress reports whether a progress bar makes sense on this
// terminal, unless forced.
func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}
	return isTTY(os.Stderr)
}

func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
