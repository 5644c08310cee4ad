package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context. The key is shared with
// the cli package via LoggerKey.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// findConfigFile finds the config file to use.
// Priority: explicit path > leaplineage.yaml > leaplineage.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("leaplineage.yaml"); err == nil {
		return "leaplineage.yaml"
	}
	if _, err := os.Stat("leaplineage.yml"); err == nil {
		return "leaplineage.yml"
	}
	return ""
}

// configExistsIn checks if a leaplineage config file exists in the directory.
func configExistsIn(dir string) bool {
	for _, name := range []string{"leaplineage.yaml", "leaplineage.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRootUpward searches upward from startDir for a leaplineage
// config file. Returns empty string if not found within
// maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root from CLI flags and filesystem.
// Priority:
//  1. Infer from --input (its directory, if it contains a config file)
//  2. Search upward from CWD for leaplineage.yaml
//  3. Current working directory
func inferProjectRoot(flags *pflag.FlagSet) string {
	// 1. Infer from --input: a mapping inside a dir carrying a config file
	// anchors the project there
	if flags != nil {
		if input, _ := flags.GetString("input"); input != "" && flags.Changed("input") {
			if absInput, err := filepath.Abs(input); err == nil {
				parent := filepath.Dir(absInput)
				if configExistsIn(parent) {
					return parent
				}
			}
		}
	}

	// 2. Search upward from CWD for leaplineage.yaml
	if cwd, err := os.Getwd(); err == nil {
		if root := findProjectRootUpward(cwd); root != "" {
			return root
		}
	}

	// 3. Default to CWD
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not
// absolute. Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// Infer project root from flags before loading config. This enables the
	// anchor pattern where --input testdata/data_mapping.csv implies the
	// project root is testdata/
	projectRoot := inferProjectRoot(flags)

	// Track the input path when explicitly flagged (relative to CWD). It is
	// converted to absolute before the normal resolution step, to prevent
	// double-resolution when the project root was inferred from it.
	var flagInput string
	if flags != nil && flags.Changed("input") {
		if v, _ := flags.GetString("input"); v != "" {
			flagInput, _ = filepath.Abs(v)
		}
	}

	// If an explicit config file is provided, use its directory as project
	// root (unless a more specific hint was given via flags)
	if cfgFile != "" && projectRoot == inferProjectRoot(nil) {
		if absPath, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(absPath)
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"input":          DefaultInput,
		"artifact":       DefaultArtifact,
		"style":          "",
		"placeholders":   DefaultPlaceholders(),
		"verbose":        false,
		"output":         DefaultOutput,
		"render.height":  DefaultHeight,
		"render.width":   DefaultWidth,
		"render.physics": true,
		"serve.addr":     DefaultAddr,
		"serve.watch":    true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file. Search in project root if no explicit
	// config file provided
	if cfgFile == "" {
		for _, name := range []string{"leaplineage.yaml", "leaplineage.yml"} {
			candidate := filepath.Join(projectRoot, name)
			if _, err := os.Stat(candidate); err == nil {
				cfgFile = candidate
				break
			}
		}
	}
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (LEAPLINEAGE_ prefix)
	// Transform: LEAPLINEAGE_SERVE_ADDR -> serve.addr
	if err := k.Load(env.Provider("LEAPLINEAGE_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "LEAPLINEAGE_"))
		return strings.ReplaceAll(key, "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// The config file path is not itself a config key
			if f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Set project root and resolve relative paths. The input provided via
	// flag was already made absolute relative to CWD at parse time; paths
	// from the config file or defaults resolve against the project root.
	cfg.ProjectRoot = projectRoot

	cfg.Input = expandEnvVars(cfg.Input)
	cfg.Artifact = expandEnvVars(cfg.Artifact)
	cfg.Style = expandEnvVars(cfg.Style)

	if flagInput != "" {
		cfg.Input = flagInput
	} else {
		cfg.Input = resolvePathRelativeTo(cfg.Input, projectRoot)
	}
	cfg.Artifact = resolvePathRelativeTo(cfg.Artifact, projectRoot)
	cfg.Style = resolvePathRelativeTo(cfg.Style, projectRoot)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger. This allows
// the commands package to retrieve the logger from context without creating
// an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expandEnvVars expands ${VAR} patterns in a string with environment
// variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}
