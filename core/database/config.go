package database

// Config holds configuration for the journal database connection.
type Config struct {
	// Driver is the database driver (mysql, sqlite). Empty disables the journal.
	Driver string `mapstructure:"driver" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name for mysql, or the file path for sqlite (":memory:" allowed).
	Name string `mapstructure:"name" default:"compactor"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Enabled reports whether a driver is configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}
