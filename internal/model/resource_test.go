package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceTags(t *testing.T) {
	t.Run("empty tags decode to an empty list", func(t *testing.T) {
		r := Resource{}
		r.SetTags(nil)
		assert.Equal(t, "", r.Tags)
		assert.Equal(t, []string{}, r.TagList())
	})

	t.Run("tags keep order and commas", func(t *testing.T) {
		r := Resource{}
		r.SetTags([]string{"go", "reading, later", "ml"})
		assert.Equal(t, []string{"go", "reading, later", "ml"}, r.TagList())
	})

	t.Run("legacy comma joined value", func(t *testing.T) {
		r := Resource{Tags: "a,b"}
		assert.Equal(t, []string{"a", "b"}, r.TagList())
	})

	t.Run("EncodeTags matches SetTags", func(t *testing.T) {
		assert.Equal(t, `["a","b"]`, EncodeTags([]string{"a", "b"}))
		assert.Equal(t, "", EncodeTags([]string{}))
	})
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{name: "no field", values: nil, expected: []string{}},
		{name: "empty string", values: []string{""}, expected: []string{}},
		{name: "comma separated", values: []string{"a,b"}, expected: []string{"a", "b"}},
		{name: "whitespace trimmed", values: []string{" a , b ,, "}, expected: []string{"a", "b"}},
		{name: "repeated fields verbatim", values: []string{"x, y", "z"}, expected: []string{"x, y", "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.values))
		})
	}
}

func TestResourceEmbedding(t *testing.T) {
	r := Resource{}
	assert.False(t, r.HasEmbedding())
	assert.Nil(t, r.EmbeddingVector())

	r.SetEmbedding([]float32{0.5, -1, 2.25})
	assert.True(t, r.HasEmbedding())
	assert.Equal(t, "[0.5,-1,2.25]", *r.Embedding)
	assert.Equal(t, []float32{0.5, -1, 2.25}, r.EmbeddingVector())

	r.SetEmbedding(nil)
	assert.False(t, r.HasEmbedding())
}

func TestResourceEmbeddingText(t *testing.T) {
	r := Resource{Title: "t", Notes: "n", TextContent: "body"}
	assert.Equal(t, "t\nn\nbody", r.EmbeddingText())

	empty := Resource{Title: "only"}
	assert.Equal(t, "only\n\n", empty.EmbeddingText())
}
