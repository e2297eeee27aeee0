package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"autospeed/lexer"
	"autospeed/parser"
)

var (
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
	ErrInvalid           = errors.New("config: invalid value")
)

// DefaultFiles are tried in order when no config path is given
var DefaultFiles = []string{"autospeed.toml", "autospeed.yaml", "autospeed.yml"}

// Config holds the complete tool configuration
type Config struct {
	Lexer   LexerConfig   `toml:"lexer" yaml:"lexer"`
	Grammar GrammarConfig `toml:"grammar" yaml:"grammar"`
	Trace   TraceConfig   `toml:"trace" yaml:"trace"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Log     LogConfig     `toml:"log" yaml:"log"`

	// file the config was read from, empty for defaults
	Source string `toml:"-" yaml:"-"`
}

type LexerConfig struct {
	LineComment string `toml:"line_comment" yaml:"line_comment"`
}

type GrammarConfig struct {
	CallSyntax bool `toml:"call_syntax" yaml:"call_syntax"`
}

type TraceConfig struct {
	Enabled    bool `toml:"enabled" yaml:"enabled"`
	Indent     int  `toml:"indent" yaml:"indent"`
	ShowTokens bool `toml:"show_tokens" yaml:"show_tokens"`
}

type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  string `toml:"color" yaml:"color"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

func Default() *Config {
	return &Config{
		Lexer: LexerConfig{
			LineComment: lexer.DefaultOptions().LineComment,
		},
		Trace: TraceConfig{
			Enabled: true,
			Indent:  2,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads path on top of the defaults, the format follows the file extension
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := decode(content, filepath.Ext(path), cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the explicit path when given, else the first default file in dir, else the defaults
func Discover(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

func decode(content []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		_, err := toml.Decode(string(content), cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (c *Config) Validate() error {
	if c.Trace.Indent < 0 {
		return fmt.Errorf("%w: trace.indent must not be negative, got %d", ErrInvalid, c.Trace.Indent)
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output.format %q, want text, json or yaml", ErrInvalid, c.Output.Format)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: output.color %q, want auto, always or never", ErrInvalid, c.Output.Color)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q, want text or json", ErrInvalid, c.Log.Format)
	}

	return nil
}

func (c *Config) LexerOptions() lexer.Options {
	return lexer.Options{LineComment: c.Lexer.LineComment}
}

func (c *Config) ParserOptions() parser.Options {
	return parser.Options{CallSyntax: c.Grammar.CallSyntax}
}
