package compare_test

import (
	"context"
	"fmt"
	"testing"

	"field-comparator/core/compare"
	"field-comparator/core/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type row struct {
	id    any
	email any
}

func memoryConnection(name string) database.Config {
	return database.Config{
		Name:         name,
		Driver:       database.DriverSQLite,
		Database:     ":memory:",
		MaxOpenConns: 1,
	}
}

func newProvider(t *testing.T) *database.Provider {
	t.Helper()
	p, err := database.NewProvider([]database.Config{
		memoryConnection("source"),
		memoryConnection("target"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func seed(t *testing.T, p *database.Provider, conn, table string, rows []row) {
	t.Helper()
	db, err := p.Get(context.Background(), conn)
	require.NoError(t, err)
	require.NoError(t, db.Exec(fmt.Sprintf("CREATE TABLE %s (id INTEGER, email TEXT, active INTEGER DEFAULT 1)", table)).Error)
	for _, r := range rows {
		require.NoError(t, db.Exec(fmt.Sprintf("INSERT INTO %s (id, email) VALUES (?, ?)", table), r.id, r.email).Error)
	}
}

func usersRule() compare.Rule {
	return compare.Rule{
		Name:         "users_email",
		Description:  "email addresses match across systems",
		Source:       compare.TableRef{Connection: "source", Table: "users"},
		Target:       compare.TableRef{Connection: "target", Table: "users"},
		KeyField:     "id",
		CompareField: "email",
	}
}

func byKind(diffs []compare.Difference) map[compare.Kind][]any {
	out := make(map[compare.Kind][]any)
	for _, d := range diffs {
		out[d.Kind] = append(out[d.Kind], d.Key)
	}
	return out
}

// connectionsFunc adapts a function to compare.Connections.
type connectionsFunc func(ctx context.Context, name string) (*gorm.DB, error)

func (f connectionsFunc) Get(ctx context.Context, name string) (*gorm.DB, error) {
	return f(ctx, name)
}
