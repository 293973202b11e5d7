package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// Cache stores fetched transcripts by video id.
type Cache interface {
	GetTranscript(ctx context.Context, videoID string) (string, bool, error)
	SetTranscript(ctx context.Context, videoID, transcript string) error
}

// Fetcher pulls caption text for YouTube videos from a captions API.
// Failures yield an empty transcript, never an error.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
}

// NewFetcher returns a fetcher for baseURL; cache may be nil.
func NewFetcher(baseURL string, cache Cache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache,
	}
}

// IsVideoURL reports whether rawURL points at youtube.com.
func IsVideoURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com")
}

// VideoID returns the text after the first "v=" up to the next "&".
// URLs without "v=" fall back to their last path segment.
func VideoID(videoURL string) string {
	if i := strings.Index(videoURL, "v="); i >= 0 {
		id := videoURL[i+len("v="):]
		if j := strings.Index(id, "&"); j >= 0 {
			id = id[:j]
		}
		return id
	}
	tail := videoURL
	if j := strings.IndexAny(tail, "?#"); j >= 0 {
		tail = tail[:j]
	}
	tail = strings.TrimRight(tail, "/")
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	return tail
}

// Fetch returns the transcript segments joined by single spaces.
func (f *Fetcher) Fetch(ctx context.Context, videoURL string) string {
	videoID := VideoID(videoURL)
	if videoID == "" {
		return ""
	}

	if f.cache != nil {
		if cached, hit, err := f.cache.GetTranscript(ctx, videoID); err == nil && hit {
			return cached
		}
	}

	text, err := f.fetch(ctx, videoID)
	if err != nil {
		log.Printf("transcript fetch for %s failed: %v", videoID, err)
		return ""
	}

	if f.cache != nil && text != "" {
		if err := f.cache.SetTranscript(ctx, videoID, text); err != nil {
			log.Printf("transcript cache set for %s failed: %v", videoID, err)
		}
	}
	return text
}

type transcriptResponse struct {
	Items []struct {
		Transcript struct {
			Segments []struct {
				Text string `json:"text"`
			} `json:"segments"`
		} `json:"transcript"`
	} `json:"items"`
}

func (f *Fetcher) fetch(ctx context.Context, videoID string) (string, error) {
	endpoint := fmt.Sprintf("%s/videos?part=transcript&id=%s", f.baseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request failed: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript response status %d", resp.StatusCode)
	}

	var parsed transcriptResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse transcript json failed: %w", err)
	}
	if len(parsed.Items) == 0 {
		return "", fmt.Errorf("transcript response has no items")
	}

	segments := parsed.Items[0].Transcript.Segments
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " "), nil
}
