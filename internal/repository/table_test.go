package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio-api/internal/database/dbtest"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/query"
	"github.com/deppfellow/portfolio-api/internal/repository"
)

func TestTableLifecycle(t *testing.T) {
	store := dbtest.NewSQLite(t)
	repos := repository.NewRepositoriesFor(store, nil, 0)
	ctx := context.Background()

	res, err := repos.Categories.Insert(ctx, query.Columns{{Name: "name", Value: query.String("Tools")}}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)

	res, err = repos.Categories.Update(ctx,
		query.Key{Column: "name", Value: query.String("Tools")},
		query.Columns{{Name: "name", Value: query.String("Toolz")}}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)

	res, err = repos.Categories.All(ctx)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Toolz", res.Rows[0]["name"])

	res, err = repos.Categories.Delete(ctx, query.Columns{{Name: "name", Value: query.String("Toolz")}}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)
	assert.Equal(t, 0, dbtest.Count(t, store, "Category"))
}

func TestTableValidationFailureLeavesStoreUntouched(t *testing.T) {
	store := dbtest.NewSQLite(t)
	repos := repository.NewRepositoriesFor(store, nil, 0)

	_, err := repos.Categories.Insert(context.Background(),
		query.Columns{{Name: "name", Value: query.String("Go")}},
		[]errs.FieldError{{Field: "name", Error: "is required"}})
	require.Error(t, err)
	assert.Equal(t, 0, dbtest.Count(t, store, "Category"))
}

func TestAssociationRepository(t *testing.T) {
	store := dbtest.NewSQLite(t)
	dbtest.Exec(t, store, "INSERT INTO Post (id, title, slug, body) VALUES (3, 'Hello', 'hello', 'x')")
	dbtest.Exec(t, store, "INSERT INTO Image (id, name, static_url) VALUES (9, 'cat', '/static/cat.png')")
	repos := repository.NewRepositoriesFor(store, nil, 0)
	assoc := repos.Associations
	ctx := context.Background()

	_, err := assoc.UpsertTags(ctx, query.PostCategory, "go, sql", query.Int(3), nil)
	require.NoError(t, err)
	_, err = assoc.LinkTag(ctx, query.PostCategory, "web", query.Int(3), nil)
	require.NoError(t, err)

	res, err := assoc.Tags(ctx, "Post", "Category", query.Int(3), nil)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 3)

	_, err = assoc.LinkTag(ctx, query.PostCategory, "web", query.Int(3), nil)
	assert.Error(t, err, "linking the same pair twice fails")

	_, err = assoc.Link(ctx, query.PostImage, query.Int(3), query.Int(9), nil)
	require.NoError(t, err)
	res, err = assoc.Media(ctx, "Post", query.Absent(), nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "/static/cat.png", res.Rows[0]["static_url"])

	res, err = assoc.Unlink(ctx, query.PostImage, query.Int(3), query.Int(9), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)

	res, err = assoc.Relink(ctx, query.PostCategory, query.Int(3), query.String("go"),
		query.Columns{{Name: "category_name", Value: query.String("sql")}}, nil)
	assert.Error(t, err, "relinking onto an existing pair violates the key")

	dbtest.Exec(t, store, "INSERT INTO Category (name) VALUES ('rust')")
	res, err = assoc.Relink(ctx, query.PostCategory, query.Int(3), query.String("go"),
		query.Columns{{Name: "category_name", Value: query.String("rust")}}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.RowsAffected)
}
