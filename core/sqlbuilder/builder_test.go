package sqlbuilder_test

import (
	"testing"

	"field-comparator/core/sqlbuilder"

	"github.com/stretchr/testify/assert"
)

var users = sqlbuilder.Table{Schema: "app", Name: "users"}

func TestTable_Qualified(t *testing.T) {
	assert.Equal(t, "app.users", users.Qualified())
	assert.Equal(t, "users", sqlbuilder.Table{Name: "users"}.Qualified())
	assert.Equal(t, "users", sqlbuilder.Table{Schema: "  ", Name: "users"}.Qualified())
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		predicate string
		want      string
	}{
		{"NoPredicate", []string{"id", "email"}, "", "SELECT id, email FROM app.users"},
		{"Predicate", []string{"id"}, "active = 1", "SELECT id FROM app.users WHERE active = 1"},
		{"BlankPredicate", []string{"id"}, "   ", "SELECT id FROM app.users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqlbuilder.Select(users, tt.fields, tt.predicate))
		})
	}
}

func TestPagedSelect(t *testing.T) {
	fields := []string{"id", "email"}
	tests := []struct {
		name    string
		dialect sqlbuilder.Dialect
		orderBy string
		want    string
	}{
		{"MySQL", sqlbuilder.MySQL, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id LIMIT 50 OFFSET 100"},
		{"Postgres", sqlbuilder.Postgres, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id LIMIT 50 OFFSET 100"},
		{"Oracle", sqlbuilder.Oracle, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id OFFSET 100 ROWS FETCH NEXT 50 ROWS ONLY"},
		{"SQLServer", sqlbuilder.SQLServer, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id OFFSET 100 ROWS FETCH NEXT 50 ROWS ONLY"},
		{"SQLServerWithoutOrder", sqlbuilder.SQLServer, "", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY (SELECT NULL) OFFSET 100 ROWS FETCH NEXT 50 ROWS ONLY"},
		{"Unknown", sqlbuilder.Unknown, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id LIMIT 50 OFFSET 100"},
		{"NilDialect", nil, "id", "SELECT id, email FROM app.users WHERE active = 1 ORDER BY id LIMIT 50 OFFSET 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sqlbuilder.PagedSelect(users, fields, "active = 1", tt.orderBy, 100, 50, tt.dialect)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPagedSelect_DeterministicAndOrdered(t *testing.T) {
	for _, d := range sqlbuilder.Dialects() {
		t.Run(d.Name(), func(t *testing.T) {
			first := sqlbuilder.PagedSelect(users, []string{"id"}, "", "id", 0, 10, d)
			second := sqlbuilder.PagedSelect(users, []string{"id"}, "", "id", 0, 10, d)
			assert.Equal(t, first, second)
			assert.Contains(t, first, " ORDER BY id")
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "SELECT COUNT(*) FROM app.users", sqlbuilder.Count(users, ""))
	assert.Equal(t, "SELECT COUNT(*) FROM app.users WHERE deleted_at IS NULL", sqlbuilder.Count(users, "deleted_at IS NULL"))
}

func TestInCondition(t *testing.T) {
	assert.Equal(t, "id IN (?)", sqlbuilder.InCondition("id", 1))
	assert.Equal(t, "id IN (?, ?, ?)", sqlbuilder.InCondition("id", 3))

	t.Run("EmptyMatchesNothing", func(t *testing.T) {
		assert.Equal(t, "1=0", sqlbuilder.InCondition("id", 0))
		assert.Equal(t, "1=0", sqlbuilder.InCondition("id", -4))
	})
}

func TestAnd(t *testing.T) {
	assert.Equal(t, "", sqlbuilder.And())
	assert.Equal(t, "", sqlbuilder.And("", "  "))
	assert.Equal(t, "a = 1", sqlbuilder.And("a = 1", ""))
	assert.Equal(t, "(id IN (?)) AND (a = 1 OR b = 2)", sqlbuilder.And("id IN (?)", "a = 1 OR b = 2"))
}
