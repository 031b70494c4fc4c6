package repository

import (
	"context"

	"github.com/deppfellow/portfolio-api/internal/database"
	"github.com/deppfellow/portfolio-api/internal/errs"
	"github.com/deppfellow/portfolio-api/internal/query"
)

// AssociationRepository reads and writes the join tables of
// query.TagAssociations and query.MediaAssociations.
type AssociationRepository struct {
	exec *Executor
}

func NewAssociationRepository(exec *Executor) *AssociationRepository {
	return &AssociationRepository{exec: exec}
}

// Tags lists the secondary names linked to primary rows. An absent
// primaryID lists the links of every primary row.
func (r *AssociationRepository) Tags(ctx context.Context, primary, secondary string, primaryID query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.AssociationsOf(primary, secondary, primaryID)
	}, fieldErrors)
}

// Media lists the images linked to primary rows.
func (r *AssociationRepository) Media(ctx context.Context, primary string, primaryID query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.MediaOf(primary, primaryID)
	}, fieldErrors)
}

// UpsertTags ensures every tag in the comma separated list exists and is
// linked to primaryID. Repeating the call changes nothing.
func (r *AssociationRepository) UpsertTags(ctx context.Context, a query.Association, list string, primaryID query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.TagUpsert(a, list, primaryID)
	}, fieldErrors)
}

// LinkTag ensures tag exists and links it to primaryID. Linking an already
// linked pair fails.
func (r *AssociationRepository) LinkTag(ctx context.Context, a query.Association, tag string, primaryID query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.TagLink(a, tag, primaryID)
	}, fieldErrors)
}

// Link inserts one join row.
func (r *AssociationRepository) Link(ctx context.Context, a query.Association, primaryID, secondary query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.Insert(a.JoinTable, a.Link(primaryID, secondary))
	}, fieldErrors)
}

// Unlink deletes one join row.
func (r *AssociationRepository) Unlink(ctx context.Context, a query.Association, primaryID, secondary query.Value, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		return b.DeleteWhere(a.JoinTable, a.Link(primaryID, secondary))
	}, fieldErrors)
}

// Relink rewrites the join row identified by (primaryID, secondary). Absent
// entries of to keep their stored value.
func (r *AssociationRepository) Relink(ctx context.Context, a query.Association, primaryID, secondary query.Value, to query.Columns, fieldErrors []errs.FieldError) (*database.Result, error) {
	return r.exec.Execute(ctx, func(b *query.Builder) (query.Executable, error) {
		keys := []query.Key{
			{Column: a.PrimaryKeyColumn, Value: primaryID},
			{Column: a.SecondaryKeyColumn, Value: secondary},
		}
		return b.UpdateByKeys(a.JoinTable, keys, to)
	}, fieldErrors)
}
