package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	drivermysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrUnknownConnection is returned when a connection name is not configured.
	ErrUnknownConnection = errors.New("connection not configured")
	// ErrUnsupportedDriver is returned for drivers without a gorm dialector.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Connect opens a pooled connection for the given configuration and verifies it with a ping.
func Connect(cfg Config) (*gorm.DB, error) {
	cfg = cfg.WithDefaults()

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	// Suppress GORM logging; query failures are reported by the callers.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", cfg.Name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleSeconds) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %q: %w", cfg.Name, err)
	}

	return db, nil
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverMySQL, "mariadb":
		if dsn == "" {
			dsn = mysqlDSN(cfg)
		}
		return mysql.Open(dsn), nil
	case DriverPostgres, "postgresql", "pgx":
		if dsn == "" {
			dsn = postgresDSN(cfg)
		}
		return postgres.Open(dsn), nil
	case DriverSQLServer, "mssql":
		if dsn == "" {
			dsn = sqlServerDSN(cfg)
		}
		return sqlserver.Open(dsn), nil
	case DriverSQLite, "sqlite3":
		if dsn == "" {
			dsn = cfg.Database
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q (connection %q)", ErrUnsupportedDriver, cfg.Driver, cfg.Name)
	}
}

func mysqlDSN(cfg Config) string {
	mc := drivermysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Timeout = cfg.Timeout()
	mc.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	mc.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

func postgresDSN(cfg Config) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:   "/" + cfg.Database,
	}
	q := url.Values{}
	q.Set("connect_timeout", strconv.Itoa(cfg.TimeoutSeconds))
	for k, v := range cfg.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func sqlServerDSN(cfg Config) string {
	port := cfg.Port
	if port == 0 {
		port = 1433
	}
	u := url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
	}
	q := url.Values{}
	q.Set("database", cfg.Database)
	q.Set("dial timeout", strconv.Itoa(cfg.TimeoutSeconds))
	for k, v := range cfg.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// describe returns a redacted, deterministic description of the target for logs.
func describe(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.Driver + " (dsn)"
	}
	parts := []string{cfg.Driver}
	if cfg.Host != "" {
		parts = append(parts, net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	}
	if cfg.Database != "" {
		parts = append(parts, cfg.Database)
	}
	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		parts = append(parts, "params="+strings.Join(keys, ","))
	}
	return strings.Join(parts, " ")
}
