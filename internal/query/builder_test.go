package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inline(t *testing.T, s Statement) string {
	t.Helper()
	text, err := s.Inline()
	require.NoError(t, err)
	return text
}

func TestBuilderStatements(t *testing.T) {
	b := NewBuilder(MySQL)

	tests := []struct {
		name  string
		build func() (Statement, error)
		want  string
		verb  Verb
	}{
		{
			name:  "select all",
			build: func() (Statement, error) { return b.SelectAll("Page") },
			want:  "SELECT * FROM Page",
			verb:  VerbSelect,
		},
		{
			name:  "select where string",
			build: func() (Statement, error) { return b.SelectWhere("Post", "slug", String("hello-world")) },
			want:  "SELECT * FROM Post WHERE slug='hello-world'",
			verb:  VerbSelect,
		},
		{
			name:  "select where bool",
			build: func() (Statement, error) { return b.SelectWhere("Page", "hidden", Bool(false)) },
			want:  "SELECT * FROM Page WHERE hidden=false",
			verb:  VerbSelect,
		},
		{
			name: "insert keeps column order",
			build: func() (Statement, error) {
				return b.Insert("Project", Columns{
					{Name: "title", Value: String("Site")},
					{Name: "description", Value: Absent()},
					{Name: "is_scrap", Value: Bool(true)},
					{Name: "published", Value: Null()},
				})
			},
			want: "INSERT INTO Project (title, is_scrap, published) VALUES ('Site', true, NULL)",
			verb: VerbInsert,
		},
		{
			name:  "insert ignore",
			build: func() (Statement, error) { return b.InsertIgnore("Technology", Columns{{Name: "name", Value: String("Go")}}) },
			want:  "INSERT IGNORE INTO Technology (name) VALUES ('Go')",
			verb:  VerbInsert,
		},
		{
			name:  "delete single match",
			build: func() (Statement, error) { return b.DeleteWhere("Demo", Columns{{Name: "id", Value: Int(5)}}) },
			want:  "DELETE FROM Demo WHERE id=5",
			verb:  VerbDelete,
		},
		{
			name: "delete composite match",
			build: func() (Statement, error) {
				return b.DeleteWhere("PostCategory", Columns{
					{Name: "post_id", Value: Int(2)},
					{Name: "category_name", Value: String("Go")},
				})
			},
			want: "DELETE FROM PostCategory WHERE post_id=2 AND category_name='Go'",
			verb: VerbDelete,
		},
		{
			name: "update by key",
			build: func() (Statement, error) {
				return b.UpdateByKey("Category", Key{Column: "name", Value: String("Tools")}, Columns{{Name: "name", Value: String("Toolz")}})
			},
			want: "UPDATE Category SET name='Toolz' WHERE name='Tools'",
			verb: VerbUpdate,
		},
		{
			name: "update by keys",
			build: func() (Statement, error) {
				return b.UpdateByKeys("ProjectTechnology",
					[]Key{{Column: "project_id", Value: Int(1)}, {Column: "technology_name", Value: String("Go")}},
					Columns{{Name: "technology_name", Value: String("Golang")}, {Name: "project_id", Value: Absent()}})
			},
			want: "UPDATE ProjectTechnology SET technology_name='Golang' WHERE project_id=1 AND technology_name='Go'",
			verb: VerbUpdate,
		},
		{
			name: "update multiple columns",
			build: func() (Statement, error) {
				return b.UpdateByKey("Image", Key{Column: "id", Value: Int(4)}, Columns{
					{Name: "name", Value: String("cat")},
					{Name: "description", Value: String("a cat")},
				})
			},
			want: "UPDATE Image SET name='cat', description='a cat' WHERE id=4",
			verb: VerbUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, inline(t, s))
			assert.Equal(t, tt.verb, s.Verb)
		})
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder(Postgres)

	tests := []struct {
		name  string
		build func() (Statement, error)
		want  error
	}{
		{"empty insert", func() (Statement, error) { return b.Insert("T", nil) }, ErrEmptyInsert},
		{"insert of absent only", func() (Statement, error) { return b.Insert("T", Columns{{Name: "a", Value: Absent()}}) }, ErrEmptyInsert},
		{"empty delete", func() (Statement, error) { return b.DeleteWhere("T", Columns{}) }, ErrEmptyDelete},
		{"delete with absent match", func() (Statement, error) { return b.DeleteWhere("T", Columns{{Name: "id", Value: Absent()}}) }, ErrInvalidValueType},
		{"empty update", func() (Statement, error) {
			return b.UpdateByKey("T", Key{Column: "id", Value: Int(1)}, Columns{{Name: "a", Value: Absent()}})
		}, ErrEmptyUpdate},
		{"update without keys", func() (Statement, error) {
			return b.UpdateByKeys("T", nil, Columns{{Name: "a", Value: Int(1)}})
		}, ErrEmptyUpdate},
		{"bad table", func() (Statement, error) { return b.SelectAll("Page; DROP TABLE Page") }, ErrInvalidIdentifier},
		{"bad column", func() (Statement, error) { return b.SelectWhere("Page", "name=1 OR 1", String("x")) }, ErrInvalidIdentifier},
		{"bad insert column", func() (Statement, error) { return b.Insert("T", Columns{{Name: "a b", Value: Int(1)}}) }, ErrInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInsertColumnValueParity(t *testing.T) {
	b := NewBuilder(Postgres)
	cols := Columns{
		{Name: "a", Value: Int(1)},
		{Name: "b", Value: Absent()},
		{Name: "c", Value: String("three")},
		{Name: "d", Value: Float(4.5)},
		{Name: "e", Value: Absent()},
		{Name: "f", Value: Bool(false)},
	}

	s, err := b.Insert("T", cols)
	require.NoError(t, err)

	text, args, err := Postgres.Bind(s)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO T (a, c, d, f) VALUES ($1, $2, $3, $4)", text)
	assert.Equal(t, []any{int64(1), "three", 4.5, false}, args)
}

func TestDialectBind(t *testing.T) {
	b := NewBuilder(Postgres)
	s, err := b.UpdateByKey("Category", Key{Column: "name", Value: String("Tools")}, Columns{{Name: "name", Value: String("Toolz")}})
	require.NoError(t, err)

	tests := []struct {
		dialect *Dialect
		want    string
	}{
		{Postgres, "UPDATE Category SET name=$1 WHERE name=$2"},
		{MySQL, "UPDATE Category SET name=? WHERE name=?"},
		{SQLite, "UPDATE Category SET name=? WHERE name=?"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			for range 2 {
				text, args, err := tt.dialect.Bind(s)
				require.NoError(t, err)
				assert.Equal(t, tt.want, text)
				assert.Equal(t, []any{"Toolz", "Tools"}, args)
			}
		})
	}
}

func TestDialectBindReusesShape(t *testing.T) {
	b := NewBuilder(SQLite)
	first, err := b.SelectWhere("Post", "id", Int(1))
	require.NoError(t, err)
	second, err := b.SelectWhere("Post", "id", Int(2))
	require.NoError(t, err)

	_, args1, err := SQLite.Bind(first)
	require.NoError(t, err)
	_, args2, err := SQLite.Bind(second)
	require.NoError(t, err)

	assert.Equal(t, []any{int64(1)}, args1)
	assert.Equal(t, []any{int64(2)}, args2)
}

func TestInsertIgnorePerDialect(t *testing.T) {
	cols := Columns{{Name: "name", Value: String("Go")}}
	tests := []struct {
		dialect *Dialect
		want    string
	}{
		{Postgres, "INSERT INTO Technology (name) VALUES ('Go') ON CONFLICT DO NOTHING"},
		{MySQL, "INSERT IGNORE INTO Technology (name) VALUES ('Go')"},
		{SQLite, "INSERT OR IGNORE INTO Technology (name) VALUES ('Go')"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			s, err := NewBuilder(tt.dialect).InsertIgnore("Technology", cols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, inline(t, s))
		})
	}
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Same(t, Postgres, d)

	d, err = DialectFor("SQLite")
	require.NoError(t, err)
	assert.Same(t, SQLite, d)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestStatementMustInline(t *testing.T) {
	b := NewBuilder(Postgres)
	s, err := b.SelectWhere("Post", "slug", String("it's"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM Post WHERE slug='it''s'", s.MustInline())

	broken := Statement{Verb: VerbDelete, Text: "DELETE FROM Demo WHERE id=:p1"}
	assert.Equal(t, "DELETE FROM Demo WHERE id=:p1", broken.MustInline())
}
