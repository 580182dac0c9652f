package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FetchOptions configures transcript fetching behavior
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxSize   int64 // Maximum transcript size in bytes
}

// DefaultFetchOptions returns default fetch options
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Timeout:   30 * time.Second,
		UserAgent: "TimelineAPI/1.0",
		MaxSize:   10 * 1024 * 1024,
	}
}

// Fetcher downloads transcripts used to seed timelines
type Fetcher struct {
	client  *http.Client
	options FetchOptions
	parser  *Parser
}

// NewFetcher creates a new transcript fetcher
func NewFetcher(options FetchOptions) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        5,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
		parser:  NewParser(),
	}
}

// Fetch downloads and parses the transcript at rawURL. The format comes from
// the URL extension, then the Content-Type header, then the content itself.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Transcript, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid transcript URL %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.options.UserAgent)
	req.Header.Set("Accept", "text/vtt,application/x-subrip,application/json,text/plain,*/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.options.MaxSize {
		return nil, fmt.Errorf("transcript too large: %d bytes (max: %d)", resp.ContentLength, f.options.MaxSize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.options.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	if int64(len(body)) > f.options.MaxSize {
		return nil, fmt.Errorf("transcript exceeds %d bytes", f.options.MaxSize)
	}

	content := string(body)
	format := DetectFormat(u.Path, "")
	if format == FormatText {
		if byType := formatFromContentType(resp.Header.Get("Content-Type")); byType != "" {
			format = byType
		} else {
			format = DetectFormat("", content)
		}
	}
	return f.parser.Parse(content, format)
}

func formatFromContentType(contentType string) TranscriptFormat {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "vtt"):
		return FormatVTT
	case strings.Contains(ct, "subrip"), strings.Contains(ct, "srt"):
		return FormatSRT
	case strings.Contains(ct, "json"):
		return FormatJSON
	}
	return ""
}
