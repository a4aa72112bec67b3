package database

import (
	"strings"
	"time"
)

// Config holds configuration for one named database connection.
// Connections are declared as a list, so the defaults are applied by
// WithDefaults rather than through struct tags.
type Config struct {
	// Name is the identifier rules use to reference this connection.
	Name string `mapstructure:"name"`
	// Driver is the database driver (mysql, postgres, sqlserver, sqlite).
	Driver string `mapstructure:"driver"`
	// DSN is a complete driver-specific data source name. When set, the
	// host/port/user/password/database fields are ignored.
	DSN string `mapstructure:"dsn"`
	// Host is the database host.
	Host string `mapstructure:"host"`
	// Port is the database port.
	Port int `mapstructure:"port"`
	// User is the database user.
	User string `mapstructure:"user"`
	// Password is the database password.
	Password string `mapstructure:"password"`
	// Database is the database (or sqlite file) name.
	Database string `mapstructure:"database"`
	// Params are extra driver parameters appended to the generated DSN.
	Params map[string]string `mapstructure:"params"`
	// MaxOpenConns caps the pool size.
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// MaxIdleConns is the number of idle connections kept in the pool.
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// ConnMaxLifetimeSeconds recycles connections after this many seconds.
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	// ConnMaxIdleSeconds closes idle connections after this many seconds.
	ConnMaxIdleSeconds int `mapstructure:"conn_max_idle_seconds"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// ReadTimeoutSeconds and WriteTimeoutSeconds bound each network read and
	// write on MySQL connections. Zero leaves them unbounded; queries are then
	// limited only by the caller's context.
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds"`
}

const (
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

// WithDefaults returns a copy of the config with unset pool settings filled in.
func (c Config) WithDefaults() Config {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 20
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetimeSeconds <= 0 {
		c.ConnMaxLifetimeSeconds = 1800
	}
	if c.ConnMaxIdleSeconds <= 0 {
		c.ConnMaxIdleSeconds = 600
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return c
}

// Timeout returns TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
