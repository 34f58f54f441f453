// Package config reads the interpreter settings file.
//
// A settings file is YAML:
//
//	import_root: /usr/share/schemer
//	max_depth: 5000
//	prompt: "scm> "
//	history_file: ~/.schemer_history
//	verbose: false
//
// Every key is optional; missing keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"schemer/eval"
)

const DefaultPrompt = "> "

// Config holds interpreter and REPL settings.
type Config struct {
	Path        string
	ImportRoot  string
	MaxDepth    int
	Prompt      string
	HistoryFile string
	Verbose     bool
}

type configFile struct {
	ImportRoot  *string `yaml:"import_root"`
	MaxDepth    *int    `yaml:"max_depth"`
	Prompt      *string `yaml:"prompt"`
	HistoryFile *string `yaml:"history_file"`
	Verbose     *bool   `yaml:"verbose"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no file is given. The import
// root is left empty, meaning the directory of the executable.
func Default() *Config {
	return &Config{
		MaxDepth: eval.DefaultMaxDepth,
		Prompt:   DefaultPrompt,
	}
}

// Load reads the settings file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, err
	}
	cfg.Path = absPath
	if cfg.ImportRoot != "" && !filepath.IsAbs(cfg.ImportRoot) {
		cfg.ImportRoot = filepath.Join(filepath.Dir(absPath), cfg.ImportRoot)
	}
	return cfg, nil
}

// Parse decodes settings from r on top of Default. An empty document
// is valid. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw *configFile) toConfig() *Config {
	cfg := Default()
	if raw.ImportRoot != nil {
		cfg.ImportRoot = strings.TrimSpace(*raw.ImportRoot)
	}
	if raw.MaxDepth != nil {
		cfg.MaxDepth = *raw.MaxDepth
	}
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	if raw.HistoryFile != nil {
		cfg.HistoryFile = expandHome(strings.TrimSpace(*raw.HistoryFile))
	}
	if raw.Verbose != nil {
		cfg.Verbose = *raw.Verbose
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	if c.ImportRoot != "" {
		if info, err := os.Stat(c.ImportRoot); err == nil && !info.IsDir() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("import_root %q is not a directory", c.ImportRoot))
		}
	}
	if strings.ContainsAny(c.Prompt, "\n\r") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
