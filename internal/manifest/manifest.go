// Package manifest reads the program.json file at the root of a Leo
// package.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest name inside a package directory.
const FileName = "program.json"

// SourceDir holds the package's .leo sources.
const SourceDir = "src"

// ErrNoManifest is returned when a directory has no program.json.
var ErrNoManifest = errors.New("no " + FileName + " found")

// Manifest describes a Leo package.
type Manifest struct {
	Program     string `json:"program"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	License     string `json:"license,omitempty"`

	// Parser optionally constrains which parser versions may read the
	// package, e.g. ">= 0.3, < 1.0".
	Parser string `json:"parser,omitempty"`

	dir        string
	version    *semver.Version
	constraint *semver.Constraints
}

// IncompatibleError reports a parser version outside the manifest's range.
type IncompatibleError struct {
	Program    string
	Constraint string
	Parser     string
	Reasons    []error
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("%s requires parser %s, running %s", e.Program, e.Constraint, e.Parser)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if strings.TrimSpace(m.Program) == "" {
		return nil, fmt.Errorf("%s: program name is required", FileName)
	}

	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid version %q: %w", FileName, m.Version, err)
	}
	m.version = v

	if strings.TrimSpace(m.Parser) != "" {
		c, err := semver.NewConstraint(m.Parser)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid parser constraint %q: %w", FileName, m.Parser, err)
		}
		m.constraint = c
	}
	return m, nil
}

// Load reads dir/program.json.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNoManifest)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.dir = dir
	return m, nil
}

// SemVer returns the parsed package version.
func (m *Manifest) SemVer() *semver.Version { return m.version }

// Dir returns the directory the manifest was loaded from.
func (m *Manifest) Dir() string { return m.dir }

// CheckParser verifies that parserVersion satisfies the manifest's parser
// constraint. A manifest without a constraint accepts any version.
func (m *Manifest) CheckParser(parserVersion string) error {
	if m.constraint == nil {
		return nil
	}
	v, err := semver.NewVersion(parserVersion)
	if err != nil {
		return fmt.Errorf("invalid parser version %q: %w", parserVersion, err)
	}
	if ok, reasons := m.constraint.Validate(v); !ok {
		return &IncompatibleError{
			Program:    m.Program,
			Constraint: m.constraint.String(),
			Parser:     v.String(),
			Reasons:    reasons,
		}
	}
	return nil
}

// SourceFiles lists the .leo files under the package's src directory in
// lexical order.
func (m *Manifest) SourceFiles() ([]string, error) {
	root := filepath.Join(m.dir, SourceDir)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".leo" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sources of %s: %w", m.Program, err)
	}
	sort.Strings(files)
	return files, nil
}
