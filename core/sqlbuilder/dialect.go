package sqlbuilder

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect describes the syntax family of a database engine.
// The set of implementations is closed: only the variants declared in this
// package satisfy it.
type Dialect interface {
	// Name returns a stable, human readable name for the dialect.
	Name() string
	// Quote escapes an identifier so it can be embedded in SQL text.
	Quote(ident string) string
	// Paginate returns the trailing pagination clause, including its leading space.
	// hasOrder reports whether the statement already carries an ORDER BY.
	Paginate(hasOrder bool, offset, limit int) string
	// MaxParams is the largest number of bind parameters a single statement may carry.
	MaxParams() int

	sealed()
}

var (
	MySQL     Dialect = mysqlDialect{}
	Postgres  Dialect = postgresDialect{}
	Oracle    Dialect = oracleDialect{}
	SQLServer Dialect = sqlServerDialect{}
	Unknown   Dialect = unknownDialect{}
)

// Dialects lists every supported variant.
func Dialects() []Dialect {
	return []Dialect{MySQL, Postgres, Oracle, SQLServer, Unknown}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) Quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

func (mysqlDialect) Paginate(_ bool, offset, limit int) string {
	return limitOffset(offset, limit)
}

func (mysqlDialect) MaxParams() int { return 65535 }

func (mysqlDialect) sealed() {}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Quote(ident string) string { return pq.QuoteIdentifier(ident) }

func (postgresDialect) Paginate(_ bool, offset, limit int) string {
	return limitOffset(offset, limit)
}

func (postgresDialect) MaxParams() int { return 65535 }

func (postgresDialect) sealed() {}

type oracleDialect struct{}

func (oracleDialect) Name() string { return "oracle" }

func (oracleDialect) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Oracle 12c+ row limiting clause.
func (oracleDialect) Paginate(_ bool, offset, limit int) string {
	return offsetFetch(offset, limit)
}

// Oracle rejects IN lists longer than 1000 expressions (ORA-01795).
func (oracleDialect) MaxParams() int { return 1000 }

func (oracleDialect) sealed() {}

type sqlServerDialect struct{}

func (sqlServerDialect) Name() string { return "sqlserver" }

func (sqlServerDialect) Quote(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}

// OFFSET/FETCH is only valid after an ORDER BY on SQL Server.
func (sqlServerDialect) Paginate(hasOrder bool, offset, limit int) string {
	clause := offsetFetch(offset, limit)
	if !hasOrder {
		return " ORDER BY (SELECT NULL)" + clause
	}
	return clause
}

// SQL Server allows 2100 parameters per request; keep headroom for predicate binds.
func (sqlServerDialect) MaxParams() int { return 2000 }

func (sqlServerDialect) sealed() {}

type unknownDialect struct{}

func (unknownDialect) Name() string { return "unknown" }

func (unknownDialect) Quote(ident string) string { return ident }

func (unknownDialect) Paginate(_ bool, offset, limit int) string {
	return limitOffset(offset, limit)
}

// SQLite builds before 3.32 cap host parameters at 999.
func (unknownDialect) MaxParams() int { return 999 }

func (unknownDialect) sealed() {}

func limitOffset(offset, limit int) string {
	return " LIMIT " + strconv.Itoa(limit) + " OFFSET " + strconv.Itoa(offset)
}

func offsetFetch(offset, limit int) string {
	return " OFFSET " + strconv.Itoa(offset) + " ROWS FETCH NEXT " + strconv.Itoa(limit) + " ROWS ONLY"
}

// InferDialect guesses the dialect from a driver name, gorm dialector name or
// connection URL. Unrecognised hints map to Unknown.
func InferDialect(hint string) Dialect {
	h := strings.ToLower(hint)
	switch {
	case h == "":
		return Unknown
	case strings.Contains(h, "mysql"), strings.Contains(h, "mariadb"):
		return MySQL
	case strings.Contains(h, "postgres"), strings.Contains(h, "pgx"):
		return Postgres
	case strings.Contains(h, "oracle"), strings.Contains(h, "godror"), strings.Contains(h, "oci8"):
		return Oracle
	case strings.Contains(h, "sqlserver"), strings.Contains(h, "mssql"):
		return SQLServer
	default:
		return Unknown
	}
}

// EscapeIdentifier quotes name for the given dialect. A nil dialect is treated as Unknown.
func EscapeIdentifier(name string, d Dialect) string {
	if d == nil {
		d = Unknown
	}
	return d.Quote(name)
}
