package database

import (
	"context"
	"fmt"
	"strings"

	"field-comparator/core/utils"

	"gorm.io/gorm"
)

// ColumnInfo describes a column as reported by the driver.
type ColumnInfo struct {
	Field    string `json:"field"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// TableExists reports whether table (optionally "schema.table") exists.
func TableExists(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

// ColumnExists reports whether table has the given column.
func ColumnExists(db *gorm.DB, table, column string) bool {
	return db.Migrator().HasColumn(table, column)
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, table string) ([]ColumnInfo, error) {
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	columns := make([]ColumnInfo, 0, len(types))
	for _, ct := range types {
		nullable, _ := ct.Nullable()
		columns = append(columns, ColumnInfo{
			Field:    strings.ToLower(ct.Name()),
			Type:     strings.ToLower(ct.DatabaseTypeName()),
			Nullable: nullable,
		})
	}
	return columns, nil
}

// Statistics summarises a connection for the health endpoints.
type Statistics struct {
	Connection      string `json:"connection"`
	Driver          string `json:"driver"`
	Connected       bool   `json:"connected"`
	Version         string `json:"version,omitempty"`
	ServerTime      string `json:"server_time,omitempty"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	Error           string `json:"error,omitempty"`
}

// statisticsQuery returns the version/time probe for a gorm dialector name.
func statisticsQuery(dialector string) string {
	switch dialector {
	case "postgres":
		return "SELECT version(), now()"
	case "sqlserver":
		return "SELECT @@VERSION, SYSDATETIME()"
	case "sqlite":
		return "SELECT sqlite_version(), datetime('now')"
	default:
		return "SELECT VERSION(), NOW()"
	}
}

// Statistics reports server version, server time and pool usage for name.
// Query failures are reported inside the result; only unknown names return an error.
func (p *Provider) Statistics(ctx context.Context, name string) (*Statistics, error) {
	cfg, ok := p.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}
	stats := &Statistics{Connection: name, Driver: cfg.Driver}

	db, err := p.Get(ctx, name)
	if err != nil {
		stats.Error = err.Error()
		return stats, nil
	}

	var version, now any
	if err := db.Raw(statisticsQuery(db.Dialector.Name())).Row().Scan(&version, &now); err != nil {
		stats.Error = err.Error()
		return stats, nil
	}
	stats.Connected = true
	stats.Version = utils.ToString(utils.Normalize(version))
	stats.ServerTime = utils.ToString(utils.Normalize(now))

	if sqlDB, err := db.DB(); err == nil {
		s := sqlDB.Stats()
		stats.OpenConnections = s.OpenConnections
		stats.InUse = s.InUse
		stats.Idle = s.Idle
	}
	return stats, nil
}
