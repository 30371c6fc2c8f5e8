package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myimpact/impact/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:       string(schema.TextOut),
		StoreBackend: string(schema.SQLiteBackend),
		Color:        "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.StartTime.Before(cfg.EndTime))
	assert.True(t, cfg.CompareStart.IsZero())

	// Default window spans roughly six months.
	span := cfg.EndTime.Sub(cfg.StartTime)
	assert.Greater(t, span, 150*24*time.Hour)
	assert.Less(t, span, 200*24*time.Hour)
}

func TestProcessAndValidateExplicitWindow(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Start = "2024-06-01"
	input.End = "2024-12-01"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime)
	// A bare end date covers the whole day.
	assert.Equal(t, time.Date(2024, time.December, 1, 23, 59, 59, 0, time.UTC), cfg.EndTime)
}

func TestProcessAndValidateInvertedWindow(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Start = "2024-12-01"
	input.End = "2024-06-01"

	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be after end time")
}

func TestProcessAndValidateBadOutput(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Output = "xml"

	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestProcessAndValidateBadBackend(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.StoreBackend = "oracle"

	err := ProcessAndValidate(cfg, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store backend")
}

func TestProcessAndValidateCompareWindow(t *testing.T) {
	t.Run("both bounds accepted", func(t *testing.T) {
		cfg := &Config{}
		input := validRawInput()
		input.CompareStart = "2023-06-01"
		input.CompareEnd = "2023-12-01"

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), cfg.CompareStart)
		assert.Equal(t, time.Date(2023, time.December, 1, 23, 59, 59, 0, time.UTC), cfg.CompareEnd)
	})

	t.Run("lone bound rejected", func(t *testing.T) {
		cfg := &Config{}
		input := validRawInput()
		input.CompareStart = "2023-06-01"

		err := ProcessAndValidate(cfg, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--compare-start and --compare-end")
	})

	t.Run("inverted bounds rejected", func(t *testing.T) {
		cfg := &Config{}
		input := validRawInput()
		input.CompareStart = "2023-12-01"
		input.CompareEnd = "2023-06-01"

		err := ProcessAndValidate(cfg, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compare-start")
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr string
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", ""},
		{"none needs nothing", schema.NoneBackend, "", ""},
		{"mysql empty", schema.MySQLBackend, "", "store-db-connect is required"},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/dbname", "@tcp("},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/impact", ""},
		{"postgres empty", schema.PostgreSQLBackend, "", "store-db-connect is required"},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", "dbname="},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=impact", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCloneWithTimeWindow(t *testing.T) {
	base := &Config{Org: "acme", Output: schema.JSONOut}
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)

	clone := base.CloneWithTimeWindow(start, end)
	assert.Equal(t, "acme", clone.Org)
	assert.Equal(t, start, clone.StartTime)
	assert.True(t, base.StartTime.IsZero(), "the original stays untouched")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "true", "1", "YES"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "false", "0", "No"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	verr := &ValidationError{Message: "report name must not be empty"}
	assert.Equal(t, "report name must not be empty", verr.Error())

	nerr := &NotFoundError{Resource: "report", ID: "r1"}
	assert.Equal(t, "report not found: r1", nerr.Error())

	berr := &BoundaryError{Message: "gh: auth required"}
	assert.Equal(t, "gh: auth required", berr.Error())
}
