package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociationsOf(t *testing.T) {
	b := NewBuilder(SQLite)

	s, err := b.AssociationsOf("Project", "Technology", Int(3))
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT Project.id, Technology.name FROM Project "+
			"JOIN ProjectTechnology ON Project.id = ProjectTechnology.project_id "+
			"JOIN Technology ON ProjectTechnology.technology_name = Technology.name "+
			"WHERE ProjectTechnology.project_id = 3",
		inline(t, s))
	assert.True(t, s.ReturnsRows())

	s, err = b.AssociationsOf("Post", "Category", Absent())
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT Post.id, Category.name FROM Post "+
			"JOIN PostCategory ON Post.id = PostCategory.post_id "+
			"JOIN Category ON PostCategory.category_name = Category.name",
		inline(t, s))
	assert.Empty(t, s.Args)
}

func TestAssociationsOfUnsupported(t *testing.T) {
	b := NewBuilder(SQLite)
	for _, pair := range [][2]string{
		{"Page", "Technology"},
		{"Project", "Category"},
		{"Technology", "Project"},
		{"Project", "Image"},
	} {
		_, err := b.AssociationsOf(pair[0], pair[1], Absent())
		assert.ErrorIs(t, err, ErrUnsupportedAssociation, "%s/%s", pair[0], pair[1])
	}
}

func TestMediaOf(t *testing.T) {
	b := NewBuilder(SQLite)

	s, err := b.MediaOf("Post", Int(9))
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT Post.id, Image.created, Image.description, Image.static_url, Image.id AS image_id FROM Post "+
			"JOIN PostImage ON Post.id = PostImage.post_id "+
			"JOIN Image ON PostImage.image_id = Image.id "+
			"WHERE PostImage.post_id = 9",
		inline(t, s))

	_, err = b.MediaOf("Project", Absent())
	require.NoError(t, err)

	_, err = b.MediaOf("Page", Absent())
	assert.ErrorIs(t, err, ErrUnsupportedAssociation)
}

func TestLookupTag(t *testing.T) {
	a, err := LookupTag("Post", "Category")
	require.NoError(t, err)
	assert.Equal(t, PostCategory, a)
	assert.Equal(t, Columns{
		{Name: "post_id", Value: Int(1)},
		{Name: "category_name", Value: String("Go")},
	}, a.Link(Int(1), String("Go")))
}
