package slogutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"", 0},
		{"lots", 0},
		{"100", 100},
		{"100b", 100},
		{"1KB", 1024},
		{" 10 mb ", 10 << 20},
		{"1GB", 1 << 30},
		{"1.5MB", int64(1.5 * (1 << 20))},
		{"-1MB", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSize(tt.input))
		})
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "smartdocs.log")

	rf, err := OpenRotatingFile(path, 20, 2)
	require.NoError(t, err)

	for _, line := range []string{"first line here\n", "second line here\n", "third line here\n", "fourth line here\n"} {
		_, err := rf.Write([]byte(line))
		require.NoError(t, err)
	}
	require.NoError(t, rf.Close())

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fourth line here\n", string(current))

	one, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "third line here\n", string(one))

	two, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "second line here\n", string(two))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingFile_NoBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")

	rf, err := OpenRotatingFile(path, 10, 0)
	require.NoError(t, err)
	_, _ = rf.Write([]byte("0123456789"))
	_, _ = rf.Write([]byte("abc"))
	require.NoError(t, rf.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotatingFile_Unlimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.log")

	rf, err := OpenRotatingFile(path, 0, 3)
	require.NoError(t, err)
	_, _ = rf.Write([]byte(strings.Repeat("a", 4096)))
	require.NoError(t, rf.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), info.Size())

	_, err = rf.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
