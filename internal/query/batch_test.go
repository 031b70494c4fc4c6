package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b,,  c ,", []string{"a", "b", "c"}},
		{"Go", []string{"Go"}},
		{"", nil},
		{" , ,  ,", nil},
		{"two words, x", []string{"two words", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.in))
		})
	}
}

func TestTagUpsert(t *testing.T) {
	b := NewBuilder(MySQL)

	batch, err := b.TagUpsert(ProjectTechnology, "a, b,,  c ,", Int(7))
	require.NoError(t, err)
	require.Len(t, batch, 6)

	want := []string{
		"INSERT IGNORE INTO Technology (name) VALUES ('a')",
		"INSERT IGNORE INTO ProjectTechnology (project_id, technology_name) VALUES (7, 'a')",
		"INSERT IGNORE INTO Technology (name) VALUES ('b')",
		"INSERT IGNORE INTO ProjectTechnology (project_id, technology_name) VALUES (7, 'b')",
		"INSERT IGNORE INTO Technology (name) VALUES ('c')",
		"INSERT IGNORE INTO ProjectTechnology (project_id, technology_name) VALUES (7, 'c')",
	}
	for i, s := range batch {
		assert.Equal(t, want[i], inline(t, s))
		assert.Equal(t, VerbInsert, s.Verb)
	}

	text, err := batch[:2].Inline()
	require.NoError(t, err)
	assert.Equal(t, want[0]+"; "+want[1]+";", text)
}

func TestTagUpsertEmptyList(t *testing.T) {
	b := NewBuilder(SQLite)
	for _, list := range []string{"", "   ", ",,", " , "} {
		batch, err := b.TagUpsert(PostCategory, list, Int(1))
		require.NoError(t, err)
		assert.Empty(t, batch)
	}
}

func TestTagUpsertNeedsPrimary(t *testing.T) {
	_, err := NewBuilder(SQLite).TagUpsert(PostCategory, "a", Absent())
	assert.ErrorIs(t, err, ErrInvalidValueType)
}

func TestTagLink(t *testing.T) {
	b := NewBuilder(SQLite)

	batch, err := b.TagLink(PostCategory, " Go ", Int(2))
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "INSERT OR IGNORE INTO Category (name) VALUES ('Go')", inline(t, batch[0]))
	assert.Equal(t, "INSERT INTO PostCategory (post_id, category_name) VALUES (2, 'Go')", inline(t, batch[1]))

	_, err = b.TagLink(PostCategory, "  ", Int(2))
	assert.ErrorIs(t, err, ErrInvalidValueType)
}
