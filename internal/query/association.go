package query

import (
	"fmt"
)

// Association describes a many-to-many edge materialized by a join table.
//
// For tag associations the secondary entity is keyed by name; for media
// associations it is the Image table keyed by id. SecondaryNameColumn is the
// column of the secondary table that SecondaryKeyColumn references.
type Association struct {
	Primary             string
	Secondary           string
	JoinTable           string
	PrimaryKeyColumn    string
	SecondaryKeyColumn  string
	SecondaryNameColumn string
}

var (
	ProjectTechnology = Association{
		Primary:             "Project",
		Secondary:           "Technology",
		JoinTable:           "ProjectTechnology",
		PrimaryKeyColumn:    "project_id",
		SecondaryKeyColumn:  "technology_name",
		SecondaryNameColumn: "name",
	}
	PostCategory = Association{
		Primary:             "Post",
		Secondary:           "Category",
		JoinTable:           "PostCategory",
		PrimaryKeyColumn:    "post_id",
		SecondaryKeyColumn:  "category_name",
		SecondaryNameColumn: "name",
	}

	ProjectImage = Association{
		Primary:             "Project",
		Secondary:           "Image",
		JoinTable:           "ProjectImage",
		PrimaryKeyColumn:    "project_id",
		SecondaryKeyColumn:  "image_id",
		SecondaryNameColumn: "id",
	}
	PostImage = Association{
		Primary:             "Post",
		Secondary:           "Image",
		JoinTable:           "PostImage",
		PrimaryKeyColumn:    "post_id",
		SecondaryKeyColumn:  "image_id",
		SecondaryNameColumn: "id",
	}
)

// TagAssociations and MediaAssociations are the only join shapes the
// builders accept.
var (
	TagAssociations   = []Association{ProjectTechnology, PostCategory}
	MediaAssociations = []Association{ProjectImage, PostImage}
)

// LookupTag finds the tag association between primary and secondary.
func LookupTag(primary, secondary string) (Association, error) {
	for _, a := range TagAssociations {
		if a.Primary == primary && a.Secondary == secondary {
			return a, nil
		}
	}
	return Association{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedAssociation, primary, secondary)
}

// LookupMedia finds the image association of primary.
func LookupMedia(primary string) (Association, error) {
	for _, a := range MediaAssociations {
		if a.Primary == primary {
			return a, nil
		}
	}
	return Association{}, fmt.Errorf("%w: %s/Image", ErrUnsupportedAssociation, primary)
}

// Link returns the join-table row linking primaryID to secondary.
func (a Association) Link(primaryID, secondary Value) Columns {
	return Columns{
		{Name: a.PrimaryKeyColumn, Value: primaryID},
		{Name: a.SecondaryKeyColumn, Value: secondary},
	}
}

func (a Association) String() string { return a.JoinTable }

// AssociationsOf builds the join from primary rows to their tags:
//
//	SELECT P.id, S.name FROM P
//	  JOIN J ON P.id = J.p_id
//	  JOIN S ON J.s_name = S.name
//	  [WHERE J.p_id = :p1]
//
// The WHERE clause is added when primaryID is not Absent. Pairs outside
// TagAssociations fail with ErrUnsupportedAssociation.
func (b *Builder) AssociationsOf(primary, secondary string, primaryID Value) (Statement, error) {
	a, err := LookupTag(primary, secondary)
	if err != nil {
		return Statement{}, err
	}
	return b.join(a, []string{a.Primary + ".id", a.Secondary + "." + a.SecondaryNameColumn}, primaryID), nil
}

// MediaOf builds the join from primary rows to their images. The selected
// columns are the primary id, Image.created, Image.description,
// Image.static_url and Image.id aliased as image_id.
func (b *Builder) MediaOf(primary string, primaryID Value) (Statement, error) {
	a, err := LookupMedia(primary)
	if err != nil {
		return Statement{}, err
	}
	return b.join(a, []string{
		a.Primary + ".id",
		"Image.created",
		"Image.description",
		"Image.static_url",
		"Image.id AS image_id",
	}, primaryID), nil
}

func (b *Builder) join(a Association, selected []string, primaryID Value) Statement {
	var w sqlWriter
	w.WriteString("SELECT ")
	for i, s := range selected {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(s)
	}
	fmt.Fprintf(&w, " FROM %[1]s JOIN %[2]s ON %[1]s.id = %[2]s.%[3]s JOIN %[4]s ON %[2]s.%[5]s = %[4]s.%[6]s",
		a.Primary, a.JoinTable, a.PrimaryKeyColumn, a.Secondary, a.SecondaryKeyColumn, a.SecondaryNameColumn)

	if !primaryID.IsAbsent() {
		w.WriteString(" WHERE " + a.JoinTable + "." + a.PrimaryKeyColumn + " = ")
		w.bind(primaryID)
	}
	return w.statement(VerbSelect)
}
