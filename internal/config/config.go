// Package config loads rxgen option files.
//
// An option file is TOML or YAML; the format follows the file extension
// (.toml, .yaml, .yml) and defaults to TOML. Keys that are absent keep
// their zero value so that callers can layer defaults and flags on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format represents the option file format.
type Format int

const (
	// FormatAuto detects the format from the file extension.
	FormatAuto Format = iota

	// FormatTOML represents TOML format (default)
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ErrEmptyPath is returned by Load for an empty path.
var ErrEmptyPath = errors.New("config file path cannot be empty")

// File is the content of an option file.
type File struct {
	// Upper bound used for unbounded quantifiers.
	InfiniteRepeat int `toml:"infinite_repeat" yaml:"infinite_repeat"`

	CaseInsensitive bool `toml:"case_insensitive" yaml:"case_insensitive"`

	// Runes matched by '.'.
	Dot string `toml:"dot" yaml:"dot"`

	// Runes matched by \s.
	Whitespace string `toml:"whitespace" yaml:"whitespace"`

	// Seed of the random source; 0 picks a random seed.
	Seed uint64 `toml:"seed" yaml:"seed"`

	// Number of strings the generate and negate commands print.
	Count int `toml:"count" yaml:"count"`

	// Maximum number of values the enumerate command prints.
	Limit int `toml:"limit" yaml:"limit"`

	// Timeout bounds a single command, e.g. "5s".
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// TimeoutDuration parses Timeout; an empty Timeout yields 0.
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
	}
	return d, nil
}

// Validate reports option values that can never be valid.
func (f *File) Validate() error {
	var errs []error
	if f.InfiniteRepeat < 0 {
		errs = append(errs, fmt.Errorf("infinite_repeat must not be negative, got %d", f.InfiniteRepeat))
	}
	if f.Count < 0 {
		errs = append(errs, fmt.Errorf("count must not be negative, got %d", f.Count))
	}
	if f.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative, got %d", f.Limit))
	}
	if _, err := f.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Load reads the option file at path, detecting its format.
func Load(path string) (*File, error) {
	return LoadFormat(path, FormatAuto)
}

// LoadFormat reads the option file at path in the given format.
func LoadFormat(path string, format Format) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	f, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates option file content.
func Parse(content []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML, FormatAuto:
		md, err := toml.Decode(string(content), &f)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported config format %s", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// DetectFormat returns the format implied by the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
