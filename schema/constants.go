package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ChangeClass represents the direction of a period-over-period change.
	ChangeClass string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All change classes supported.
const (
	NewChange      ChangeClass = "new"     // no prior activity, current activity present
	FlatChange     ChangeClass = "flat"    // no activity in either period
	NeutralChange  ChangeClass = "neutral" // change below the 1% noise floor
	IncreaseChange ChangeClass = "increase"
	DecreaseChange ChangeClass = "decrease"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllOrganizations is the sentinel org filter meaning "no filter".
const AllOrganizations = "__all__"

// MaxRepositoryEntries caps the repository distribution at the busiest repos.
const MaxRepositoryEntries = 10

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
