package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	CommandDecode   = "decode"
	CommandDescribe = "describe"
)

// Input formats. FormatAuto picks the format from the input file extension.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputText = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command        string
	DescriptorPath string // serialized FileDescriptorSet
	TypeName       string
	InputPath      string // empty or "-" reads stdin

	Format    string
	Output    string
	JSONNames bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptorPath == "" {
		return nil, errors.New("DescriptorPath is a required configuration field and cannot be empty")
	}

	switch cfg.Command {
	case CommandDecode:
		if cfg.TypeName == "" {
			return nil, errors.New("TypeName is required for decode")
		}

	case CommandDescribe:
		// TypeName is optional, all messages are described without it

	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}

	switch cfg.Format {
	case FormatAuto, FormatJSON, FormatYAML, FormatHCL:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'auto', 'json', 'yaml' or 'hcl'", cfg.Format)
	}

	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}

	if cfg.Output != OutputJSON && cfg.Output != OutputText {
		return nil, fmt.Errorf("invalid output %q: must be 'json' or 'text'", cfg.Output)
	}

	return &cfg, nil
}

// inputFormat resolves FormatAuto by the extension of the input path.
// Stdin defaults to JSON.
func (c *Config) inputFormat() string {
	if c.Format != FormatAuto {
		return c.Format
	}

	switch strings.ToLower(filepath.Ext(c.InputPath)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}
