// Copyright 2017 Alexey Naidyonov. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE.md file.

package includelines

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

var ErrManifestFormat = errors.New("unsupported manifest format")

// Manifest describes one generated file holding several declarations.
// Root and Output are relative to the directory of the manifest.
type Manifest struct {
	Package    string          `yaml:"package" hcl:"package,optional"`
	Output     string          `yaml:"output" hcl:"output,optional"`
	Root       string          `yaml:"root" hcl:"root,optional"`
	Strict     bool            `yaml:"strict" hcl:"strict,optional"`
	Unexported bool            `yaml:"unexported" hcl:"unexported,optional"`
	NoComments bool            `yaml:"no_comments" hcl:"no_comments,optional"`
	Entries    []ManifestEntry `yaml:"entries" hcl:"entry,block"`

	path string
}

// ManifestEntry is the manifest form of Entry. Kind is a kind name such as
// "lines" or "static"; empty means "lines".
type ManifestEntry struct {
	Name string `yaml:"name" hcl:"name,label"`
	File string `yaml:"file" hcl:"file"`
	Kind string `yaml:"kind" hcl:"kind,optional"`
}

// LoadManifest reads a YAML (.yaml, .yml) or HCL (.hcl) manifest.
func LoadManifest(path string) (*Manifest, error) {
	var (
		m   Manifest
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = loadYAML(path, &m)
	case ".hcl":
		err = loadHCL(path, &m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrManifestFormat, path)
	}
	if err != nil {
		return nil, err
	}
	m.path = path
	return &m, nil
}

func loadYAML(path string, m *Manifest) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(m); err != nil {
		if err == io.EOF {
			return fmt.Errorf("manifest %s is empty", path)
		}
		return fmt.Errorf("failed to decode YAML manifest %s: %w", path, err)
	}
	return nil
}

func loadHCL(path string, m *Manifest) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL manifest %s: %w", path, diags)
	}
	diags = gohcl.DecodeBody(file.Body, nil, m)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL manifest %s: %w", path, diags)
	}
	return nil
}

func (m *Manifest) dir() string {
	return filepath.Dir(m.path)
}

// RootDir is the directory entry files are resolved against.
func (m *Manifest) RootDir() string {
	if filepath.IsAbs(m.Root) {
		return m.Root
	}
	return filepath.Join(m.dir(), m.Root)
}

// OutputPath is where the generated file goes. Without an explicit output it
// is the manifest path with a .go extension.
func (m *Manifest) OutputPath() string {
	out := m.Output
	if out == "" {
		base := filepath.Base(m.path)
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".go"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.dir(), out)
}

func (m *Manifest) Flags() Flag {
	return Flag(0).Set(Strict, m.Strict).
		Set(Unexported, m.Unexported).
		Set(NoComments, m.NoComments)
}

// GeneratorEntries converts the manifest entries, checking their kinds.
func (m *Manifest) GeneratorEntries() ([]Entry, error) {
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("manifest %s has no entries", m.path)
	}
	entries := make([]Entry, 0, len(m.Entries))
	for _, me := range m.Entries {
		if me.File == "" {
			return nil, fmt.Errorf("manifest %s: entry %q has no file", m.path, me.Name)
		}
		kind, err := ParseKind(me.Kind)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: entry %q: %w", m.path, me.Name, err)
		}
		entries = append(entries, Entry{Name: me.Name, File: me.File, Kind: kind})
	}
	return entries, nil
}
