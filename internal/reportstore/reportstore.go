// Package reportstore persists saved reports and settings.
package reportstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver

	"github.com/myimpact/impact/internal/contract"
	"github.com/myimpact/impact/schema"
)

// Table names for report storage.
const (
	reportsTable  = "impact_reports"
	settingsTable = "impact_settings"
)

// apiKeySetting is the settings row holding the OpenAI API key.
const apiKeySetting = "openai_api_key"

// StoreImpl implements the ReportStore interface over various database backends.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ReportStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new report store based on the backend type.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.ReportStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled persistence
		return &StoreImpl{db: nil, backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	for _, query := range createTableQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create report tables: %w", err)
		}
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// openDB opens the backend-specific database handle.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetReportsDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite report store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL report store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL report store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// createTableQueries returns the CREATE TABLE statements for the backend.
func createTableQueries(backend schema.DatabaseBackend) []string {
	reports := quoteTableName(reportsTable, backend)
	settings := quoteTableName(settingsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id VARCHAR(64) PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					created_at DATETIME(6) NOT NULL,
					org_name VARCHAR(255) NOT NULL,
					date_range VARCHAR(255) NOT NULL,
					pr_count INT NOT NULL,
					summary TEXT NOT NULL,
					pull_requests JSON NOT NULL
				);
			`, reports),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					setting_key VARCHAR(255) PRIMARY KEY,
					setting_value TEXT NOT NULL
				);
			`, settings),
		}

	case schema.PostgreSQLBackend:
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL,
					org_name TEXT NOT NULL,
					date_range TEXT NOT NULL,
					pr_count INTEGER NOT NULL,
					summary TEXT NOT NULL,
					pull_requests JSONB NOT NULL
				);
			`, reports),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					setting_key TEXT PRIMARY KEY,
					setting_value TEXT NOT NULL
				);
			`, settings),
		}

	default: // SQLite
		return []string{
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at TEXT NOT NULL,
					org_name TEXT NOT NULL,
					date_range TEXT NOT NULL,
					pr_count INTEGER NOT NULL,
					summary TEXT NOT NULL,
					pull_requests TEXT NOT NULL
				);
			`, reports),
			fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					setting_key TEXT PRIMARY KEY,
					setting_value TEXT NOT NULL
				);
			`, settings),
		}
	}
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// quoteTableName returns the properly quoted table name for the given backend.
// Table names are compile-time constants matching tableNamePattern.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if !tableNamePattern.MatchString(name) {
		panic(fmt.Sprintf("invalid table name: %s", name))
	}
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholder returns the Nth parameter placeholder for the backend.
func (s *StoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// formatTime converts a time for storage. SQLite gets RFC3339Nano text so
// values sort lexicographically; other backends take native time values.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseStoredTime reads a time column that may be text or native.
func parseStoredTime(v any) time.Time {
	switch tv := v.(type) {
	case time.Time:
		return tv
	case string:
		if t, err := time.Parse(time.RFC3339Nano, tv); err == nil {
			return t
		}
	case []byte:
		if t, err := time.Parse(time.RFC3339Nano, string(tv)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Save implements the ReportStore interface. An existing id is overwritten,
// so writing back a mutated snapshot keeps the same identity.
func (s *StoreImpl) Save(report schema.SavedReport) error {
	if s.db == nil {
		return nil
	}

	records, err := json.Marshal(report.PullRequests)
	if err != nil {
		return fmt.Errorf("encode pull requests: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, report.CreatedAt)
	if err != nil {
		createdAt = time.Now().UTC()
	}

	table := quoteTableName(reportsTable, s.backend)
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, name, created_at, org_name, date_range, pr_count, summary, pull_requests)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, org_name = new.org_name, date_range = new.date_range,
				pr_count = new.pr_count, summary = new.summary, pull_requests = new.pull_requests`, table)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (id, name, created_at, org_name, date_range, pr_count, summary, pull_requests)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, org_name = EXCLUDED.org_name,
				date_range = EXCLUDED.date_range, pr_count = EXCLUDED.pr_count, summary = EXCLUDED.summary,
				pull_requests = EXCLUDED.pull_requests`, table)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, name, created_at, org_name, date_range, pr_count, summary, pull_requests)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, table)
	}

	_, err = s.db.Exec(query,
		report.ID, report.Name, formatTime(createdAt, s.backend), report.OrgName,
		report.DateRange, report.PRCount, report.Summary, string(records))
	if err != nil {
		return fmt.Errorf("save report %s: %w", report.ID, err)
	}
	return nil
}

// scanReport reads one report row.
func scanReport(scan func(dest ...any) error) (schema.SavedReport, error) {
	var r schema.SavedReport
	var createdAt any
	var records string
	if err := scan(&r.ID, &r.Name, &createdAt, &r.OrgName, &r.DateRange, &r.PRCount, &r.Summary, &records); err != nil {
		return r, err
	}
	r.CreatedAt = parseStoredTime(createdAt).UTC().Format(time.RFC3339)
	if err := json.Unmarshal([]byte(records), &r.PullRequests); err != nil {
		return r, fmt.Errorf("decode pull requests for report %s: %w", r.ID, err)
	}
	return r, nil
}

const reportColumns = "id, name, created_at, org_name, date_range, pr_count, summary, pull_requests"

// List implements the ReportStore interface, returning reports newest first.
func (s *StoreImpl) List() ([]schema.SavedReport, error) {
	if s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC",
		reportColumns, quoteTableName(reportsTable, s.backend))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []schema.SavedReport
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Get implements the ReportStore interface.
func (s *StoreImpl) Get(id string) (schema.SavedReport, error) {
	if s.db == nil {
		return schema.SavedReport{}, &contract.NotFoundError{Resource: "report", ID: id}
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s",
		reportColumns, quoteTableName(reportsTable, s.backend), s.placeholder(1))
	row := s.db.QueryRow(query, id)

	r, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.SavedReport{}, &contract.NotFoundError{Resource: "report", ID: id}
	}
	return r, err
}

// UpdateSummary implements the ReportStore interface.
func (s *StoreImpl) UpdateSummary(id, summary string) error {
	if s.db == nil {
		return &contract.NotFoundError{Resource: "report", ID: id}
	}

	var query string
	table := quoteTableName(reportsTable, s.backend)
	if s.backend == schema.PostgreSQLBackend {
		query = fmt.Sprintf("UPDATE %s SET summary = $1 WHERE id = $2", table)
	} else {
		query = fmt.Sprintf("UPDATE %s SET summary = ? WHERE id = ?", table)
	}

	res, err := s.db.Exec(query, summary, id)
	if err != nil {
		return fmt.Errorf("update report %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report %s: %w", id, err)
	}
	if affected == 0 {
		return &contract.NotFoundError{Resource: "report", ID: id}
	}
	return nil
}

// Delete implements the ReportStore interface.
func (s *StoreImpl) Delete(id string) error {
	if s.db == nil {
		return &contract.NotFoundError{Resource: "report", ID: id}
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s",
		quoteTableName(reportsTable, s.backend), s.placeholder(1))
	res, err := s.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if affected == 0 {
		return &contract.NotFoundError{Resource: "report", ID: id}
	}
	return nil
}

// GetAPIKey implements the ReportStore interface.
func (s *StoreImpl) GetAPIKey() (string, error) {
	if s.db == nil {
		return "", nil
	}

	query := fmt.Sprintf("SELECT setting_value FROM %s WHERE setting_key = %s",
		quoteTableName(settingsTable, s.backend), s.placeholder(1))
	var value string
	err := s.db.QueryRow(query, apiKeySetting).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", apiKeySetting, err)
	}
	return value, nil
}

// SetAPIKey implements the ReportStore interface.
func (s *StoreImpl) SetAPIKey(key string) error {
	if s.db == nil {
		return fmt.Errorf("settings are not available with the %s backend", s.backend)
	}

	table := quoteTableName(settingsTable, s.backend)
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (setting_key, setting_value) VALUES (?, ?) AS new
			ON DUPLICATE KEY UPDATE setting_value = new.setting_value`, table)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (setting_key, setting_value) VALUES ($1, $2)
			ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value`, table)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (setting_key, setting_value) VALUES (?, ?)`, table)
	}

	if _, err := s.db.Exec(query, apiKeySetting, key); err != nil {
		return fmt.Errorf("store setting %s: %w", apiKeySetting, err)
	}
	return nil
}

// GetStatus implements the ReportStore interface.
func (s *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.db == nil {
		return status, nil
	}

	table := quoteTableName(reportsTable, s.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalReports); err != nil {
		return status, fmt.Errorf("failed to get total reports: %w", err)
	}
	if status.TotalReports == 0 {
		return status, nil
	}

	var last, oldest any
	lastQuery := fmt.Sprintf("SELECT MAX(created_at) FROM %s", table)
	if err := s.db.QueryRow(lastQuery).Scan(&last); err != nil {
		return status, fmt.Errorf("failed to get last report time: %w", err)
	}
	status.LastReportTime = parseStoredTime(last)

	oldestQuery := fmt.Sprintf("SELECT MIN(created_at) FROM %s", table)
	if err := s.db.QueryRow(oldestQuery).Scan(&oldest); err != nil {
		return status, fmt.Errorf("failed to get oldest report time: %w", err)
	}
	status.OldestReportTime = parseStoredTime(oldest)

	summaryQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE summary <> ''", table)
	if err := s.db.QueryRow(summaryQuery).Scan(&status.SummaryCount); err != nil {
		return status, fmt.Errorf("failed to count summaries: %w", err)
	}

	return status, nil
}

// Close implements the ReportStore interface.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
