// Package config loads shipcheck.yaml.
//
// The file is optional. Missing fields keep their defaults; unknown fields
// are rejected so typos surface instead of being ignored. The merged result
// is checked against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/tracker"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is read when no --config flag is given. Its absence is not an error.
const DefaultPath = "shipcheck.yaml"

// DefaultDatabase is the profile database used when none is configured.
const DefaultDatabase = "shipcheck.db"

// Project mirrors tracker.Project for the config file.
type Project struct {
	Title    string   `yaml:"title" json:"title"`
	Label    string   `yaml:"label" json:"label"`
	Features []string `yaml:"features" json:"features"`
}

// Config is the decoded shipcheck.yaml.
type Config struct {
	Database  string  `yaml:"database" json:"database"`
	KeyPrefix string  `yaml:"key_prefix" json:"key_prefix"`
	Project   Project `yaml:"project" json:"project"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	p := tracker.DefaultProject
	return &Config{
		Database:  DefaultDatabase,
		KeyPrefix: store.DefaultPrefix,
		Project: Project{
			Title:    p.Title,
			Label:    p.Label,
			Features: append([]string(nil), p.Features...),
		},
	}
}

// TrackerProject converts the project section for the views.
func (c *Config) TrackerProject() tracker.Project {
	return tracker.Project{
		Title:    c.Project.Title,
		Label:    c.Project.Label,
		Features: append([]string(nil), c.Project.Features...),
	}
}

// Load reads path. An empty path tries DefaultPath and falls back to
// Default() when that file does not exist. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true) // Reject unknown fields
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if cfg.Project.Features == nil {
		cfg.Project.Features = []string{}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded CUE schema.
func Validate(cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := def.Unify(ctx.Encode(cfg))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
