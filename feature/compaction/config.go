package compaction

// Config holds the run parameters and tuning of the compactor.
// Command-line flags override these values.
type Config struct {
	// Username is the first segment of the table prefix.
	Username string `mapstructure:"username" default:""`
	// Database is the second segment of the table prefix.
	Database string `mapstructure:"database" default:""`
	// Table is the third segment of the table prefix and the object name stem.
	Table string `mapstructure:"table" default:""`
	// StartDate is the first day (YYYY-MM-DD) whose sources are compacted.
	StartDate string `mapstructure:"start_date" default:""`
	// EndDate is the last day (YYYY-MM-DD) whose sources are compacted.
	EndDate string `mapstructure:"end_date" default:""`
	// Granularity is one of hour, day, month, year.
	Granularity string `mapstructure:"granularity" default:"hour"`
	// Concurrency is the number of merge groups processed in parallel.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// WorkDir is where per-run scratch workspaces are created. Empty uses the OS temp dir.
	WorkDir string `mapstructure:"work_dir" default:""`
	// Extension filters candidate object names.
	Extension string `mapstructure:"extension" default:".parquet"`
}

// Request builds a run request from the configured parameters.
func (c Config) Request() Request {
	return Request{
		Username:    c.Username,
		Database:    c.Database,
		Table:       c.Table,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Granularity: c.Granularity,
	}
}
