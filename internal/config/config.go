// =============================================================================
// FBX to DAE Automation - Configuration Module
// =============================================================================
//
// This module is responsible for loading the run configuration. The
// configuration is read once at startup into an immutable Config value that
// is passed by parameter into every component; nothing reads it globally.
//
// CONFIGURATION FILES:
//   1. config.yaml : The primary format (YAML).
//   2. config.xml  : The legacy format of the earlier batch scripts.
//                    Only the three path attributes are understood:
//
//      <FbxConverterAutomation fbx_converter_path="..."
//                              fbx_dir="./fbx"
//                              dae_dir="./dae"/>
//
// VALIDATION:
//   Loading only parses and applies defaults. Checks against the
//   filesystem (converter exists, directories exist) live in the
//   validation package.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/fbx-to-dae-automation/pkg/utils"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputDir        = "./fbx"
	DefaultOutputDir       = "./dae"
	DefaultInputExtension  = ".fbx"
	DefaultOutputExtension = "dae"
	DefaultInputFormat     = "FBX"
	DefaultOutputFormat    = "DAE"
	DefaultIndentSpaces    = 1
	DefaultLogLevel        = "info"

	// LegacyRootElement is the root element of the legacy XML config.
	LegacyRootElement = "FbxConverterAutomation"
)

// DefaultExecutableExtensions lists the extensions accepted for the
// converter executable. Comparison is done on the lower-cased extension.
var DefaultExecutableExtensions = []string{".exe"}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the run configuration.
type Config struct {
	// =========================================================================
	// CONVERTER SETTINGS
	// =========================================================================

	// ConverterPath is the path to the external FBX converter executable.
	// Required.
	ConverterPath string `yaml:"converter_path"`

	// ExecutableExtensions are the accepted extensions for ConverterPath.
	// An empty string entry accepts an executable without extension.
	// Default: [".exe"]
	ExecutableExtensions []string `yaml:"executable_extensions"`

	// ConverterTimeout bounds a single converter run. Zero waits forever.
	// Default: 0
	ConverterTimeout time.Duration `yaml:"converter_timeout"`

	// InputFormat is the tag passed as /sff<InputFormat>.
	// Default: "FBX"
	InputFormat string `yaml:"input_format"`

	// OutputFormat is the tag passed as /dff<OutputFormat>.
	// Default: "DAE"
	OutputFormat string `yaml:"output_format"`

	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned (non-recursively) for input files.
	// Default: "./fbx"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the converted files.
	// Default: "./dae"
	OutputDir string `yaml:"output_dir"`

	// InputExtension selects input files. Matching ignores case.
	// Default: ".fbx"
	InputExtension string `yaml:"input_extension"`

	// OutputExtension is appended to the input stem, without the dot.
	// Default: "dae"
	OutputExtension string `yaml:"output_extension"`

	// =========================================================================
	// OUTPUT FORMATTING
	// =========================================================================

	// IndentSpaces is the number of spaces per nesting level used when the
	// repaired DAE document is written back.
	// Default: 1
	IndentSpaces int `yaml:"indent_spaces"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// Overrides carries values given on the command line. Empty fields leave
// the file value untouched.
type Overrides struct {
	ConverterPath string
	InputDir      string
	OutputDir     string
	LogLevel      string
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration at path. The format is chosen by extension:
// ".xml" is the legacy format, anything else is YAML.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - An error if the file cannot be read or parsed.
func Load(path string) (Config, error) {
	var (
		cfg Config
		err error
	)

	if strings.EqualFold(filepath.Ext(path), ".xml") {
		cfg, err = loadLegacyXML(path)
	} else {
		cfg, err = loadYAML(path)
	}
	if err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns the configuration used when no configuration file
// exists. It has no converter path.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

// ResolvePath picks the configuration file to load. When the user did not
// set --config explicitly and the default YAML file is missing, a legacy
// config.xml next to it is used instead.
func ResolvePath(path string, explicit bool) string {
	if explicit {
		return path
	}
	if utils.FileExists(path) {
		return path
	}

	legacy := filepath.Join(filepath.Dir(path), "config.xml")
	if utils.FileExists(legacy) {
		return legacy
	}
	return path
}

// loadYAML parses the YAML configuration file.
func loadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// loadLegacyXML parses the legacy XML configuration file.
func loadLegacyXML(path string) (Config, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	root := doc.SelectElement(LegacyRootElement)
	if root == nil {
		return Config{}, fmt.Errorf("failed to parse config file: missing <%s> element", LegacyRootElement)
	}

	return Config{
		ConverterPath: root.SelectAttrValue("fbx_converter_path", ""),
		InputDir:      root.SelectAttrValue("fbx_dir", DefaultInputDir),
		OutputDir:     root.SelectAttrValue("dae_dir", DefaultOutputDir),
	}, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.InputExtension == "" {
		cfg.InputExtension = DefaultInputExtension
	}
	if !strings.HasPrefix(cfg.InputExtension, ".") {
		cfg.InputExtension = "." + cfg.InputExtension
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = DefaultOutputExtension
	}
	cfg.OutputExtension = strings.TrimPrefix(cfg.OutputExtension, ".")
	if cfg.InputFormat == "" {
		cfg.InputFormat = DefaultInputFormat
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	if len(cfg.ExecutableExtensions) == 0 {
		cfg.ExecutableExtensions = append([]string(nil), DefaultExecutableExtensions...)
	}
	if cfg.IndentSpaces <= 0 {
		cfg.IndentSpaces = DefaultIndentSpaces
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// WithOverrides returns a copy of cfg with the non-empty overrides applied.
func (c Config) WithOverrides(o Overrides) Config {
	if o.ConverterPath != "" {
		c.ConverterPath = o.ConverterPath
	}
	if o.InputDir != "" {
		c.InputDir = o.InputDir
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	c.ExecutableExtensions = append([]string(nil), c.ExecutableExtensions...)
	return c
}

// OutputPathFor derives the output path for an input file:
// {OutputDir}/{stem(inputPath)}.{OutputExtension}
func (c Config) OutputPathFor(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.OutputDir, stem+"."+c.OutputExtension)
}

// MatchesInput reports whether name carries the input extension,
// ignoring case.
func (c Config) MatchesInput(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && strings.EqualFold(ext, c.InputExtension)
}

// MatchesOutput reports whether name carries the output extension,
// ignoring case.
func (c Config) MatchesOutput(name string) bool {
	ext := filepath.Ext(name)
	return ext != "" && strings.EqualFold(ext[1:], c.OutputExtension)
}
