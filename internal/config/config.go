// Package config loads the uinav configuration from defaults, a TOML file,
// the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/chatter/uinav/internal/rebind"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the per-process configuration, built once and passed to the
// components that need it.
type Config struct {
	LogLevel string `toml:"log_level"`
	// LayoutPath is the layout file to load; empty means the built-in layout.
	LayoutPath   string     `toml:"layout"`
	BindingsPath string     `toml:"bindings"`
	Screen       string     `toml:"screen"`
	Rebind       Rebind     `toml:"rebind"`
	Navigation   Navigation `toml:"navigation"`

	// Path is the config file that was read, if any.
	Path string `toml:"-"`
}

// Rebind configures the input-rebinding screen.
type Rebind struct {
	// Restrictions has one device restriction per key column.
	Restrictions []string `toml:"restrictions"`
	Blacklist    []string `toml:"blacklist"`
	Whitelist    []string `toml:"whitelist"`
	AllowSwap    bool     `toml:"allow_swap"`
	CancelKeys   []string `toml:"cancel_keys"`
}

// Navigation configures the screen stack.
type Navigation struct {
	// AllowRemoveIfRoot lets Back on the root screen quit.
	AllowRemoveIfRoot bool `toml:"allow_remove_if_root"`
}

const (
	envConfig   = "UINAV_CONFIG"
	envLogLevel = "UINAV_LOG_LEVEL"
	envLayout   = "UINAV_LAYOUT"
	envBindings = "UINAV_BINDINGS"
	envScreen   = "UINAV_SCREEN"

	appName = "uinav"
)

// UsageError is returned by LoadArgs when the command line asks for help or
// fails to parse. Usage holds the flag summary to show the user.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Default returns the built-in configuration for the given environment.
func Default(environ []string) Config {
	env := parseEnv(environ)
	return Config{
		BindingsPath: filepath.Join(configDir(env), "bindings.toml"),
		Rebind: Rebind{
			Restrictions: []string{"keyboard_mouse", "gamepad"},
			AllowSwap:    true,
			CancelKeys:   []string{"esc"},
		},
		Navigation: Navigation{AllowRemoveIfRoot: true},
	}
}

// Load reads the configuration for this process.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	var usage strings.Builder
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(&usage)
	fs.Usage = func() {
		fmt.Fprintf(&usage, "Usage of %s:\n", appName)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to the config file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (empty disables logging)")
	layout := fs.String("layout", "", "path to a layout file (default: built-in layout)")
	bindings := fs.String("bindings", "", "path to the key bindings file")
	screen := fs.String("screen", "", "initial screen, matched fuzzily against screen names")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err, Usage: usage.String()}
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := Default(environ)

	path, explicit := filepath.Join(configDir(env), "config.toml"), false
	if v, ok := env[envConfig]; ok && v != "" {
		path, explicit = v, true
	}
	if set["config"] {
		path, explicit = *configPath, true
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return Config{}, err
	}

	overrides := []struct {
		flag, env string
		value     *string
		dst       *string
	}{
		{"log-level", envLogLevel, logLevel, &cfg.LogLevel},
		{"layout", envLayout, layout, &cfg.LayoutPath},
		{"bindings", envBindings, bindings, &cfg.BindingsPath},
		{"screen", envScreen, screen, &cfg.Screen},
	}
	for _, o := range overrides {
		if v, ok := env[o.env]; ok && v != "" {
			*o.dst = v
		}
		if set[o.flag] {
			*o.dst = *o.value
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile merges the TOML file at path into c. A missing file is only an
// error when the path was given explicitly.
func (c *Config) readFile(path string, explicit bool) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not open config file: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return fmt.Errorf("parse %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// Validate checks the restriction columns and names.
func (c Config) Validate() error {
	if n := len(c.Rebind.Restrictions); n < 1 || n > 3 {
		return fmt.Errorf("%w: %d restriction columns (want 1 to 3)", ErrInvalidConfig, n)
	}
	if _, err := c.Restrictions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Restrictions parses the configured restriction columns.
func (c Config) Restrictions() ([]rebind.Restriction, error) {
	out := make([]rebind.Restriction, len(c.Rebind.Restrictions))
	for i, name := range c.Rebind.Restrictions {
		r, err := rebind.ParseRestriction(name)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// RebindOptions returns the container options for the rebinding screen.
func (c Config) RebindOptions() (rebind.Options, error) {
	restrictions, err := c.Restrictions()
	if err != nil {
		return rebind.Options{}, err
	}
	return rebind.Options{
		Restrictions: restrictions,
		Blacklist:    c.Rebind.Blacklist,
		Whitelist:    c.Rebind.Whitelist,
		AllowSwap:    c.Rebind.AllowSwap,
	}, nil
}

func configDir(env map[string]string) string {
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			home, _ = os.UserHomeDir()
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}
