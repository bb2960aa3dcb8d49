package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestMP3 is a few bytes that look enough like an mp3 for the pipeline,
// which never decodes them itself.
var TestMP3 = []byte("ID3\x04\x00\x00\x00\x00\x00\x00fake mpeg frames")

// TestWAV returns a minimal valid 16kHz mono PCM WAV file.
func TestWAV() []byte {
	wavHeader := []byte{
		0x52, 0x49, 0x46, 0x46, // "RIFF"
		0x24, 0x08, 0x00, 0x00, // File size (2084 bytes)
		0x57, 0x41, 0x56, 0x45, // "WAVE"
		0x66, 0x6D, 0x74, 0x20, // "fmt "
		0x10, 0x00, 0x00, 0x00, // Chunk size
		0x01, 0x00, // Audio format (PCM)
		0x01, 0x00, // Channels (mono)
		0x80, 0x3E, 0x00, 0x00, // Sample rate (16000)
		0x00, 0x7D, 0x00, 0x00, // Byte rate
		0x02, 0x00, // Block align
		0x10, 0x00, // Bits per sample
		0x64, 0x61, 0x74, 0x61, // "data"
		0x00, 0x08, 0x00, 0x00, // Data size (2048 bytes)
	}
	return append(wavHeader, make([]byte, 2048)...)
}

// CreateTestAudioFile writes data to name inside a fresh temp directory.
func CreateTestAudioFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	fullPath := filepath.Join(t.TempDir(), filepath.Base(name))
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		t.Fatalf("Failed to create test audio file: %v", err)
	}
	return fullPath
}

// Shell scripts standing in for the external tools. They receive the same
// arguments as the real ones.
const (
	// FakeFFmpeg copies the source ($3) to the target ($4): -y -i src dst
	FakeFFmpeg = `cp "$3" "$4"`
	// FakeFFmpegFail mimics ffmpeg rejecting its input.
	FakeFFmpegFail = `echo "$3: Invalid data found when processing input" >&2; exit 1`
	// FakeFFmpegNoOutput exits 0 without writing the target.
	FakeFFmpegNoOutput = `exit 0`
	// FakeWhisper writes <output_dir>/<base>.txt like openai-whisper:
	// wav --language l --model m --output_format txt --output_dir dir
	FakeWhisper = `base=$(basename "$1" .wav); echo "hello from $5" > "${9}/${base}.txt"`
	// FakeWhisperSilent writes an empty transcript, as whisper does for silence.
	FakeWhisperSilent = `base=$(basename "$1" .wav); : > "${9}/${base}.txt"`
	// FakeWhisperNoOutput exits 0 without writing a transcript.
	FakeWhisperNoOutput = `exit 0`
	// FakeHang never finishes on its own.
	FakeHang = `sleep 30`
)

// WriteFakeTool writes an executable shell script named name into dir and
// returns its path.
func WriteFakeTool(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("Failed to write fake tool %s: %v", name, err)
	}
	return path
}
