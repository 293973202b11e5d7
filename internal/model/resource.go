package model

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	ResourceTypePDF   = "pdf"
	ResourceTypeDOCX  = "docx"
	ResourceTypeVideo = "video"
	ResourceTypeWeb   = "web"
)

// Resource is a stored document or URL with its extracted text.
// Tags and Embedding are JSON arrays in text columns for portability.
type Resource struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:512" json:"title"`
	Type        string    `gorm:"size:16;index" json:"type"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Tags        string    `gorm:"type:text" json:"-"`
	TextContent string    `gorm:"type:text" json:"-"`
	Embedding   *string   `gorm:"type:text" json:"-"` // nil when the embedding call failed
	CreatedAt   time.Time `json:"created_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// TagList decodes the stored tags. Rows written as plain comma-joined
// strings are still split on commas.
func (r *Resource) TagList() []string {
	raw := strings.TrimSpace(r.Tags)
	if raw == "" {
		return []string{}
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			if tags == nil {
				tags = []string{}
			}
			return tags
		}
	}
	return strings.Split(r.Tags, ",")
}

// SetTags stores tags as a JSON array.
func (r *Resource) SetTags(tags []string) {
	if len(tags) == 0 {
		r.Tags = ""
		return
	}
	b, _ := json.Marshal(tags)
	r.Tags = string(b)
}

// EncodeTags returns the column value SetTags would store.
func EncodeTags(tags []string) string {
	var r Resource
	r.SetTags(tags)
	return r.Tags
}

// SetEmbedding stores the vector as JSON; an empty vector clears it.
func (r *Resource) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		r.Embedding = nil
		return
	}
	b, _ := json.Marshal(vec)
	s := string(b)
	r.Embedding = &s
}

// EmbeddingVector returns the parsed embedding; nil when absent or unparsable.
func (r *Resource) EmbeddingVector() []float32 {
	if r.Embedding == nil || *r.Embedding == "" {
		return nil
	}
	var v []float32
	if err := json.Unmarshal([]byte(*r.Embedding), &v); err != nil {
		return nil
	}
	return v
}

// EmbeddingText is the input sent to the embedding API.
func (r *Resource) EmbeddingText() string {
	return r.Title + "\n" + r.Notes + "\n" + r.TextContent
}

func (r *Resource) HasEmbedding() bool {
	return r.Embedding != nil && *r.Embedding != ""
}

// ParseTags turns form input into a tag list. A single value is split on
// commas; multiple values are taken verbatim so a tag may contain a comma.
// Surrounding whitespace and empty tags are dropped.
func ParseTags(values []string) []string {
	var parts []string
	switch len(values) {
	case 0:
		return []string{}
	case 1:
		parts = strings.Split(values[0], ",")
	default:
		parts = values
	}
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
