package toolexec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCappedBuffer(t *testing.T) {
	b := newCappedBuffer(5)

	n, err := b.Write([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, b.Truncated())

	n, err = b.Write([]byte("defgh"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "abcde", b.String())
	assert.True(t, b.Truncated())

	n, _ = b.Write([]byte("ijk"))
	assert.Equal(t, 3, n)
	assert.Equal(t, "abcde", b.String())
	assert.Equal(t, int64(6), b.dropped)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:   ErrToolFailed,
		Tool:   "ffmpeg",
		Result: Result{ExitCode: 1, Stderr: strings.Repeat("x", 2000) + "moov atom not found\n"},
	}
	msg := err.Error()
	assert.Contains(t, msg, "ffmpeg exited with status 1")
	assert.Contains(t, msg, "moov atom not found")
	assert.Less(t, len(msg), 700)
	assert.ErrorIs(t, err, ErrToolFailed)
}
