// Package config loads the settings of one tender run. It is read once at
// process start; nothing else in the module looks at the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

const (
	RendererRod   = "rod"
	RendererColly = "colly"

	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

type Config struct {
	Portal    PortalConfig    `yaml:"portal"`
	Keywords  []string        `yaml:"keywords"`
	Shortlist ShortlistConfig `yaml:"shortlist"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`

	// DryRun ranks and prints the shortlist without touching the store.
	DryRun bool `yaml:"dry_run"`
}

type PortalConfig struct {
	URL                   string `yaml:"url"`
	Renderer              string `yaml:"renderer"` // "rod" or "colly"
	RowSelector           string `yaml:"row_selector"`
	CellSelector          string `yaml:"cell_selector"`
	WaitSelector          string `yaml:"wait_selector"`
	WaitTimeoutSeconds    int    `yaml:"wait_timeout_seconds"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	UserAgent             string `yaml:"user_agent,omitempty"`
	ChromeBin             string `yaml:"chrome_bin,omitempty"`
}

func (p PortalConfig) WaitTimeout() time.Duration {
	return time.Duration(p.WaitTimeoutSeconds) * time.Second
}

func (p PortalConfig) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSeconds) * time.Second
}

type ShortlistConfig struct {
	Limit int `yaml:"limit"`
}

type StoreConfig struct {
	Backend         string `yaml:"backend"` // "sheets" or "postgres"
	SpreadsheetID   string `yaml:"spreadsheet_id,omitempty"`
	SheetName       string `yaml:"sheet_name,omitempty"`
	CredentialsJSON string `yaml:"credentials_json,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	DatabaseURL     string `yaml:"database_url,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load builds the configuration from the embedded defaults, the YAML file at
// path (skipped when path is empty) and finally the environment. A .env file
// in the working directory is loaded first if present. The result is not
// validated so callers can apply flag overrides before calling Validate.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := decode(defaultYAML, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode expands ${VAR} references and merges data into cfg. Keys missing
// from data keep their current value.
func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	return yaml.Unmarshal([]byte(expanded), cfg)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		cfg.Store.SpreadsheetID = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS"); v != "" {
		cfg.Store.CredentialsJSON = v
	}
	if v := os.Getenv("GOOGLE_CREDENTIALS_FILE"); v != "" {
		cfg.Store.CredentialsFile = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Store.DatabaseURL = v
	}
	if v := os.Getenv("TENDER_KEYWORDS"); v != "" {
		cfg.Keywords = splitList(v)
	}
	if v := os.Getenv("SHORTLIST_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SHORTLIST_LIMIT %q: %w", v, err)
		}
		cfg.Shortlist.Limit = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every problem found, joined into one error. Store
// settings are not checked for a dry run.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Portal.URL) == "" {
		errs = append(errs, errors.New("portal.url is required"))
	}
	switch c.Portal.Renderer {
	case RendererRod, RendererColly:
	default:
		errs = append(errs, fmt.Errorf("portal.renderer %q is not one of rod, colly", c.Portal.Renderer))
	}
	if c.Portal.WaitTimeoutSeconds < 0 {
		errs = append(errs, errors.New("portal.wait_timeout_seconds must not be negative"))
	}

	if len(splitList(strings.Join(c.Keywords, ","))) == 0 {
		errs = append(errs, errors.New("at least one keyword is required"))
	}
	if c.Shortlist.Limit < 0 {
		errs = append(errs, errors.New("shortlist.limit must not be negative"))
	}

	if !c.DryRun {
		errs = append(errs, c.Store.validate()...)
	}

	return errors.Join(errs...)
}

func (s StoreConfig) validate() []error {
	var errs []error
	switch s.Backend {
	case BackendSheets:
		if s.SpreadsheetID == "" {
			errs = append(errs, errors.New("store.spreadsheet_id (GOOGLE_SHEET_ID) is required for the sheets backend"))
		}
	case BackendPostgres:
		if s.DatabaseURL == "" {
			errs = append(errs, errors.New("store.database_url (DATABASE_URL) is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is not one of sheets, postgres", s.Backend))
	}
	return errs
}
