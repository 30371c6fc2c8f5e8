package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/myimpact/impact/schema"
)

// DateFormat is the accepted flag format for window bounds.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command invocation.
// This struct remains the "final, validated" config.
type Config struct {
	StartTime time.Time
	EndTime   time.Time
	Org       string // "" or schema.AllOrganizations means no filter

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Compare window. Zero values mean "the period immediately preceding
	// the current window".
	CompareStart time.Time
	CompareEnd   time.Time

	SaveName  string
	Summarize bool
	ReportID  string

	// TargetVersion is the migration target: -1 latest, 0 down, N specific.
	TargetVersion int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Org            string `mapstructure:"org"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from compareCmd.Flags() ---
	CompareStart string `mapstructure:"compare-start"`
	CompareEnd   string `mapstructure:"compare-end"`

	// --- Fields from reportCmd.Flags() ---
	Save      string `mapstructure:"save"`
	Summarize bool   `mapstructure:"summarize"`

	// --- Fields from summaryCmd.Flags() ---
	Report string `mapstructure:"report"`

	// --- Fields from reports migrateCmd.Flags() ---
	Version int `mapstructure:"version"`
}

// CloneWithTimeWindow creates a copy of the Config and sets the new StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start, end time.Time) *Config {
	clone := *c
	clone.StartTime = start
	clone.EndTime = end
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processCompareRange(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Org = strings.TrimSpace(input.Org)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SaveName = input.Save
	cfg.Summarize = input.Summarize
	cfg.ReportID = strings.TrimSpace(input.Report)
	cfg.TargetVersion = input.Version

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(DateTimeFormat, s)
}

// processTimeRange handles window parsing. The default window is the last
// six months ending today.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	start, end := schema.DefaultDateRange(time.Now())
	cfg.StartTime = start
	cfg.EndTime = end

	if input.Start != "" {
		t, err := parseDate(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date '%s'. Expected YYYY-MM-DD or RFC3339: %w", input.Start, err)
		}
		cfg.StartTime = t
	}
	if input.End != "" {
		t, err := parseDate(input.End)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. Expected YYYY-MM-DD or RFC3339: %w", input.End, err)
		}
		// A bare date means the whole day.
		if len(input.End) == len(DateFormat) {
			t = t.Add(24*time.Hour - time.Second)
		}
		cfg.EndTime = t
	}

	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}

// processCompareRange handles the optional explicit comparison window.
// Both bounds must be given together; when absent the compare window stays
// zero and callers derive the preceding period.
func processCompareRange(cfg *Config, input *ConfigRawInput) error {
	if input.CompareStart == "" && input.CompareEnd == "" {
		return nil
	}
	if input.CompareStart == "" || input.CompareEnd == "" {
		return fmt.Errorf("must specify both --compare-start and --compare-end, or neither")
	}

	start, err := parseDate(input.CompareStart)
	if err != nil {
		return fmt.Errorf("invalid compare-start date '%s': %w", input.CompareStart, err)
	}
	end, err := parseDate(input.CompareEnd)
	if err != nil {
		return fmt.Errorf("invalid compare-end date '%s': %w", input.CompareEnd, err)
	}
	if len(input.CompareEnd) == len(DateFormat) {
		end = end.Add(24*time.Hour - time.Second)
	}
	if start.After(end) {
		return fmt.Errorf("compare-start (%s) cannot be after compare-end (%s)", input.CompareStart, input.CompareEnd)
	}

	cfg.CompareStart = start
	cfg.CompareEnd = end
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
