package includelines

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReaderLines(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "file lines",
			input: "these\nare\nfile\nlines\n",
			want:  []string{"these", "are", "file", "lines"},
		},
		{
			name:  "no trailing newline",
			input: "these\nare\nfile\nlines",
			want:  []string{"these", "are", "file", "lines"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "single newline",
			input: "\n",
			want:  []string{""},
		},
		{
			name:  "blank lines kept",
			input: "a\n\n\nb\n",
			want:  []string{"a", "", "", "b"},
		},
		{
			name:  "crlf",
			input: "a\r\nb\r\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "lone carriage return at end",
			input: "a\nb\r",
			want:  []string{"a", "b\r"},
		},
		{
			name:  "invalid utf-8 skipped",
			input: "a\n\xff\xfe\nb\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "invalid last line without newline",
			input: "a\nb\xc3",
			want:  []string{"a"},
		},
		{
			name:  "unicode",
			input: "héllo\n世界\n",
			want:  []string{"héllo", "世界"},
		},
		{
			name:  "quotes and tabs",
			input: "say \"hi\"\ttab\\\n",
			want:  []string{"say \"hi\"\ttab\\"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tc.input), 0)
			got := slices.Collect(r.All())
			require.NoError(t, r.Err())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReaderStrict(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\n\xff\nc\n"), Strict)
	got := slices.Collect(r.All())
	assert.Equal(t, []string{"a", "b"}, got)

	var decodeErr *DecodeError
	require.ErrorAs(t, r.Err(), &decodeErr)
	assert.Equal(t, 3, decodeErr.Record)
	assert.False(t, r.Scan())
}

func TestReaderSinglePass(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\n"), 0)
	assert.Equal(t, []string{"a", "b"}, slices.Collect(r.All()))
	assert.Empty(t, slices.Collect(r.All()))
	assert.NoError(t, r.Err())
}

func TestReaderEarlyBreak(t *testing.T) {
	r := NewReader(strings.NewReader("a\nb\nc\n"), 0)
	for line := range r.All() {
		assert.Equal(t, "a", line)
		break
	}
	assert.Equal(t, []string{"b", "c"}, slices.Collect(r.All()))
}

func TestReaderLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	r := NewReader(strings.NewReader(long+"\nshort\n"), 0)
	got := slices.Collect(r.All())
	require.NoError(t, r.Err())
	require.Len(t, got, 2)
	assert.Equal(t, long, got[0])
}

type failingReader struct{ done bool }

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.done {
		f.done = true
		return copy(p, "a\nb"), nil
	}
	return 0, errors.New("device gone")
}

func TestReaderReadError(t *testing.T) {
	r := NewReader(&failingReader{}, 0)
	got := slices.Collect(r.All())
	assert.Equal(t, []string{"a"}, got)
	assert.EqualError(t, r.Err(), "device gone")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "these\nare\nfile\nlines\n")
	writeFile(t, dir, "sub/nested.txt", "one\n")

	t.Run("relative", func(t *testing.T) {
		lines, err := ReadLines(dir, "file.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"these", "are", "file", "lines"}, lines)
	})

	t.Run("nested", func(t *testing.T) {
		lines, err := ReadLines(dir, "sub/nested.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, lines)
	})

	t.Run("absolute inside root", func(t *testing.T) {
		lines, err := ReadLines(dir, filepath.Join(dir, "file.txt"), 0)
		require.NoError(t, err)
		assert.Len(t, lines, 4)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadLines(dir, "missing.txt", 0)
		var openErr *OpenError
		require.ErrorAs(t, err, &openErr)
		assert.Equal(t, "missing.txt", openErr.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("escapes root", func(t *testing.T) {
		_, err := ReadLines(filepath.Join(dir, "sub"), "../file.txt", 0)
		assert.ErrorIs(t, err, ErrPathEscapes)
	})

	t.Run("absolute outside root", func(t *testing.T) {
		_, err := ReadLines(filepath.Join(dir, "sub"), filepath.Join(dir, "file.txt"), 0)
		assert.ErrorIs(t, err, ErrPathEscapes)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := ReadLines(dir, "sub", 0)
		var openErr *OpenError
		assert.ErrorAs(t, err, &openErr)
	})
}

func TestCountLinesMatchesReadLines(t *testing.T) {
	dir := t.TempDir()
	inputs := map[string]string{
		"empty.txt":   "",
		"plain.txt":   "these\nare\nfile\nlines\n",
		"partial.txt": "a\nb",
		"invalid.txt": "a\n\xff\nb\nc\n",
	}
	for name, content := range inputs {
		writeFile(t, dir, name, content)
	}
	for name := range inputs {
		t.Run(name, func(t *testing.T) {
			lines, err := ReadLines(dir, name, 0)
			require.NoError(t, err)
			n, err := CountLines(dir, name, 0)
			require.NoError(t, err)
			assert.Equal(t, len(lines), n)
		})
	}

	n, err := CountLines(dir, "invalid.txt", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = CountLines(dir, "invalid.txt", Strict)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "invalid.txt", decodeErr.Path)
	assert.Equal(t, 2, decodeErr.Record)
}
