// Package database manages the named database connections the comparator reads from.
//
// It wraps GORM so that every configured connection, whatever its engine, is
// exposed as a pooled *gorm.DB. The comparison engine only issues raw SQL
// through these handles; GORM contributes the driver registry, bind-variable
// rewriting and the schema migrator used for table and column checks.
//
// # Drivers
//
//   - mysql: gorm.io/driver/mysql, DSN formatted with go-sql-driver/mysql
//   - postgres: gorm.io/driver/postgres (pgx)
//   - sqlserver: gorm.io/driver/sqlserver (go-mssqldb)
//   - sqlite: gorm.io/driver/sqlite
//
// # Provider
//
// Provider replaces a global connection cache with an explicit object. A
// handle is created the first time a name is requested and reused afterwards;
// concurrent first requests for the same name are collapsed with singleflight.
//
//	provider, err := database.NewProvider(cfg.Connections, log)
//	db, err := provider.Get(ctx, "warehouse")
//	healthy := provider.ValidateAll(ctx)
package database
