package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"About Me", "about-me"},
		{"Hello, World!", "hello-world"},
		{"O'Brien's_notes", "obriens_notes"},
		{"already-safe", "already-safe"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestParseBoolean(t *testing.T) {
	for _, in := range []string{"", "false", "FALSE", " False ", "0"} {
		assert.False(t, ParseBoolean(in), in)
	}
	for _, in := range []string{"true", "on", "1", "yes", "anything"} {
		assert.True(t, ParseBoolean(in), in)
	}
}

func TestParseBooleanIfDefined(t *testing.T) {
	assert.Nil(t, ParseBooleanIfDefined(nil))

	empty := Text("")
	assert.Nil(t, ParseBooleanIfDefined(&empty))

	off := Text("false")
	got := ParseBooleanIfDefined(&off)
	require.NotNil(t, got)
	assert.False(t, *got)

	on := Text("1")
	got = ParseBooleanIfDefined(&on)
	require.NotNil(t, got)
	assert.True(t, *got)
}

func TestTextUnmarshalJSON(t *testing.T) {
	var body struct {
		ID     *Text `json:"id"`
		Hidden *Text `json:"hidden"`
		Title  *Text `json:"title"`
		Gone   *Text `json:"gone"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "hidden": true, "title": "Hi", "gone": null}`), &body))

	assert.Equal(t, "42", body.ID.String())
	id, ok := body.ID.Int()
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, "true", body.Hidden.String())
	assert.Equal(t, "Hi", body.Title.String())
	assert.Nil(t, body.Gone)

	_, ok = body.Title.Int()
	assert.False(t, ok)

	var bad Text
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}
