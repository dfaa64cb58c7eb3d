package includelines

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlManifest = `package: words
output: gen/words_lines.go
root: data
strict: true
entries:
  - name: Words
    file: words.txt
    kind: static
  - file: words.txt
    kind: count
  - name: Raw
    file: words.txt
`

const hclManifest = `package = "words"
output  = "gen/words_lines.go"
root    = "data"
strict  = true

entry "Words" {
  file = "words.txt"
  kind = "static"
}

entry "WordsCount" {
  file = "words.txt"
  kind = "count"
}

entry "Raw" {
  file = "words.txt"
}
`

func TestLoadManifest(t *testing.T) {
	testCases := []struct {
		name      string
		file      string
		content   string
		countName string
	}{
		{name: "yaml", file: "lines.yaml", content: yamlManifest},
		{name: "yml", file: "lines.yml", content: yamlManifest},
		{name: "hcl", file: "lines.hcl", content: hclManifest, countName: "WordsCount"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tc.file, tc.content)
			writeFile(t, dir, "data/words.txt", "these\nare\nfile\nlines\n")

			m, err := LoadManifest(path)
			require.NoError(t, err)
			assert.Equal(t, "words", m.Package)
			assert.Equal(t, filepath.Join(dir, "data"), m.RootDir())
			assert.Equal(t, filepath.Join(dir, "gen", "words_lines.go"), m.OutputPath())
			assert.Equal(t, Strict, m.Flags())

			entries, err := m.GeneratorEntries()
			require.NoError(t, err)
			assert.Equal(t, []Entry{
				{Name: "Words", File: "words.txt", Kind: StaticLinesKind},
				{Name: tc.countName, File: "words.txt", Kind: CountKind},
				{Name: "Raw", File: "words.txt", Kind: LinesKind},
			}, entries)

			g := &Generator{Root: m.RootDir(), Package: m.Package, Flags: m.Flags()}
			require.NoError(t, g.WriteFile(context.Background(), m.OutputPath(), entries))
			src, err := os.ReadFile(m.OutputPath())
			require.NoError(t, err)
			pkg := typeCheck(t, src)
			assert.Equal(t, int64(4), constInt(t, pkg, "WordsLen"))
		})
	}
}

func TestManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stop_words.yaml", "entries:\n  - file: stop.txt\n")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, dir, m.RootDir())
	assert.Equal(t, filepath.Join(dir, "stop_words.go"), m.OutputPath())
	assert.Equal(t, Flag(0), m.Flags())
}

func TestManifestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(writeFile(t, dir, "lines.json", "{}"))
	assert.ErrorIs(t, err, ErrManifestFormat)

	_, err = LoadManifest(writeFile(t, dir, "unknown.yaml", "pakage: words\n"))
	assert.Error(t, err)

	_, err = LoadManifest(writeFile(t, dir, "empty.yaml", ""))
	assert.Error(t, err)

	_, err = LoadManifest(writeFile(t, dir, "broken.hcl", "entry {\n"))
	assert.Error(t, err)

	_, err = LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	m, err := LoadManifest(writeFile(t, dir, "badkind.yaml", "entries:\n  - file: a.txt\n    kind: table\n"))
	require.NoError(t, err)
	_, err = m.GeneratorEntries()
	assert.ErrorIs(t, err, ErrUnknownKind)

	m, err = LoadManifest(writeFile(t, dir, "nofile.yaml", "entries:\n  - name: A\n"))
	require.NoError(t, err)
	_, err = m.GeneratorEntries()
	assert.Error(t, err)

	m, err = LoadManifest(writeFile(t, dir, "noentries.yaml", "package: words\n"))
	require.NoError(t, err)
	_, err = m.GeneratorEntries()
	assert.Error(t, err)
}
