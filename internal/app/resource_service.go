package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resource-library/internal/ai"
	"resource-library/internal/model"
	"resource-library/internal/pkg/docxextract"
	"resource-library/internal/pkg/pdfextract"
	"resource-library/internal/repository"
	"resource-library/internal/transcript"
)

const untitled = "Untitled"

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoURL string) string
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.ResourceEvent) error
}

// TextExtractor reads a stored file and returns its plain text.
type TextExtractor func(path string) (string, error)

type ResourceService struct {
	repo        *repository.ResourceRepository
	embedder    ai.Embedder
	transcripts TranscriptFetcher
	publisher   EventPublisher
	uploadDir   string
	extractors  map[string]TextExtractor
	now         func() time.Time
}

// NewResourceService wires the service; publisher may be nil.
func NewResourceService(
	repo *repository.ResourceRepository,
	embedder ai.Embedder,
	transcripts TranscriptFetcher,
	publisher EventPublisher,
	uploadDir string,
) *ResourceService {
	return &ResourceService{
		repo:        repo,
		embedder:    embedder,
		transcripts: transcripts,
		publisher:   publisher,
		uploadDir:   uploadDir,
		extractors: map[string]TextExtractor{
			model.ResourceTypePDF:  pdfextract.ExtractFile,
			model.ResourceTypeDOCX: docxextract.ExtractFile,
		},
		now: time.Now,
	}
}

// UploadFile is a file received from a client.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// IngestInput carries exactly one of File or URL.
type IngestInput struct {
	File  *UploadFile
	URL   string
	Notes string
	Tags  []string
}

type UpdateInput struct {
	ID    string
	Notes string
	Tags  []string
}

// Ingest stores a file or URL as a new resource.
func (s *ResourceService) Ingest(ctx context.Context, input IngestInput) (*model.Resource, error) {
	rawURL := strings.TrimSpace(input.URL)
	hasFile := input.File != nil
	if hasFile == (rawURL != "") {
		return nil, fmt.Errorf("%w: exactly one of file or url is required", ErrInvalidInput)
	}

	var title string
	if hasFile {
		title = filepath.Base(input.File.Name)
		switch title {
		case ".", "..", string(filepath.Separator):
			return nil, fmt.Errorf("%w: invalid file name %q", ErrInvalidInput, input.File.Name)
		}
	} else {
		title = urlTitle(rawURL)
	}
	resourceType := DetectType(title, rawURL)

	var textContent string
	if hasFile {
		path, err := s.saveUpload(title, input.File.Content)
		if err != nil {
			return nil, err
		}
		if extract, ok := s.extractors[resourceType]; ok {
			textContent, err = extract(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrExtractFailed, title, err)
			}
		}
	}
	if rawURL != "" && transcript.IsVideoURL(rawURL) && s.transcripts != nil {
		textContent = s.transcripts.Fetch(ctx, rawURL)
	}

	resource := &model.Resource{
		ID:          uuid.NewString(),
		Title:       title,
		Type:        resourceType,
		Notes:       input.Notes,
		TextContent: textContent,
		CreatedAt:   s.now().UTC(),
	}
	resource.SetTags(input.Tags)
	resource.SetEmbedding(s.embed(ctx, resource.EmbeddingText()))

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, err
	}
	s.publish(ctx, model.EventResourceCreated, resource)
	return resource, nil
}

// List returns resources whose title, notes or text contain query,
// ignoring case. An empty query returns everything.
func (s *ResourceService) List(ctx context.Context, query string) ([]model.Resource, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	if needle == "" {
		return all, nil
	}
	filtered := make([]model.Resource, 0, len(all))
	for _, r := range all {
		if matchesQuery(r, needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	return resource, nil
}

// Update overwrites notes and tags; missing values blank the fields.
func (s *ResourceService) Update(ctx context.Context, input UpdateInput) error {
	resource, err := s.Get(ctx, input.ID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateNotesAndTags(ctx, resource.ID, input.Notes, model.EncodeTags(input.Tags)); err != nil {
		return err
	}
	s.publish(ctx, model.EventResourceUpdated, resource)
	return nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, resource.ID); err != nil {
		return err
	}
	s.publish(ctx, model.EventResourceDeleted, resource)
	return nil
}

// DetectType maps a title extension or URL to a resource type.
func DetectType(title, rawURL string) string {
	switch strings.ToLower(filepath.Ext(title)) {
	case ".pdf":
		return model.ResourceTypePDF
	case ".docx":
		return model.ResourceTypeDOCX
	}
	if transcript.IsVideoURL(rawURL) {
		return model.ResourceTypeVideo
	}
	return model.ResourceTypeWeb
}

func urlTitle(rawURL string) string {
	title := rawURL
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		title = rawURL[i+1:]
	}
	if strings.TrimSpace(title) == "" {
		return untitled
	}
	return title
}

func matchesQuery(r model.Resource, needle string) bool {
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Notes), needle) ||
		strings.Contains(strings.ToLower(r.TextContent), needle)
}

// saveUpload writes content under the upload dir, replacing any file
// with the same name.
func (s *ResourceService) saveUpload(name string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir failed: %w", err)
	}
	path := filepath.Join(s.uploadDir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file failed: %w", err)
	}
	if _, err := io.Copy(out, content); err != nil {
		out.Close()
		return "", fmt.Errorf("write upload file failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close upload file failed: %w", err)
	}
	return path, nil
}

func (s *ResourceService) embed(ctx context.Context, text string) []float32 {
	if s.embedder == nil {
		return nil
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("embedding error: %v", err)
		return nil
	}
	return vec
}

func (s *ResourceService) publish(ctx context.Context, kind string, resource *model.Resource) {
	if s.publisher == nil {
		return
	}
	event := model.ResourceEvent{
		Kind:       kind,
		ResourceID: resource.ID,
		Title:      resource.Title,
		Type:       resource.Type,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish %s for %s failed: %v", kind, resource.ID, err)
	}
}
