package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseVTT(t *testing.T) {
	vttContent := `WEBVTT
Kind: captions

NOTE recorded live
00:00:00.000 --> 00:00:01.000 ignored

intro
00:00:00.000 --> 00:00:03.000
<v Alice>Welcome to the show.</v>

00:00:03.000 --> 00:00:06.000
Today we're discussing
<i>timelines</i>.

01:00.000 --> 01:04.500
<v.loud Bob>Thanks for listening.`

	parser := NewParser()
	transcript, err := parser.Parse(vttContent, FormatVTT)
	if err != nil {
		t.Fatalf("Failed to parse VTT: %v", err)
	}

	if len(transcript.Segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(transcript.Segments))
	}

	first := transcript.Segments[0]
	if first.Text != "Welcome to the show." || first.Speaker != "Alice" {
		t.Errorf("First segment mismatch: %+v", first)
	}

	if transcript.Segments[1].Text != "Today we're discussing timelines." {
		t.Errorf("Multi-line cue mismatch: %q", transcript.Segments[1].Text)
	}

	last := transcript.Segments[2]
	if last.Start != time.Minute || last.End != 64500*time.Millisecond || last.Speaker != "Bob" {
		t.Errorf("Hourless cue mismatch: %+v", last)
	}

	if transcript.Duration != 64500*time.Millisecond {
		t.Errorf("Expected duration of 64.5s, got %v", transcript.Duration)
	}

	if !strings.HasPrefix(transcript.ToPlainText(), "Welcome to the show. Today") {
		t.Errorf("Full text mismatch: %s", transcript.ToPlainText())
	}
}

func TestParseSRT(t *testing.T) {
	srtContent := "1\r\n00:00:00,000 --> 00:00:03,000\r\nWelcome back.\r\n\r\n" +
		"2\r\n00:00:03,500 --> 00:00:06,250\r\n42\r\nis the answer.\r\n"

	parser := NewParser()
	transcript, err := parser.Parse(srtContent, FormatSRT)
	if err != nil {
		t.Fatalf("Failed to parse SRT: %v", err)
	}

	if len(transcript.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(transcript.Segments))
	}

	second := transcript.Segments[1]
	if second.Text != "42 is the answer." {
		t.Errorf("Numeric cue text was dropped: %q", second.Text)
	}
	if second.Start != 3500*time.Millisecond || second.End != 6250*time.Millisecond {
		t.Errorf("Second segment timing mismatch: %v-%v", second.Start, second.End)
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantText   string
		wantStart  time.Duration
		speaker    string
		confidence float64
	}{
		{
			name:      "podcast array",
			content:   `[{"startTime": 1.5, "endTime": 4, "body": "Hello"}]`,
			wantText:  "Hello",
			wantStart: 1500 * time.Millisecond,
		},
		{
			name:      "snake case",
			content:   `[{"start_time": 0, "end_time": 2, "text": " Hi "}]`,
			wantText:  "Hi",
			wantStart: 0,
		},
		{
			name: "whisperx",
			content: `{"segments": [{"start": 2.0, "end": 5.0, "text": "It works.", "speaker": "SPEAKER_01",
				"words": [{"word": "It", "score": 0.8}, {"word": "works.", "score": 0.9}, {"word": "?"}]}]}`,
			wantText:   "It works.",
			wantStart:  2 * time.Second,
			speaker:    "SPEAKER_01",
			confidence: 0.85,
		},
		{
			name:       "explicit confidence",
			content:    `{"segments": [{"start": 0, "end": 1, "text": "ok", "confidence": 0.5}]}`,
			wantText:   "ok",
			confidence: 0.5,
		},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript, err := parser.Parse(tt.content, FormatJSON)
			if err != nil {
				t.Fatalf("Failed to parse JSON: %v", err)
			}
			if len(transcript.Segments) != 1 {
				t.Fatalf("Expected 1 segment, got %d", len(transcript.Segments))
			}
			seg := transcript.Segments[0]
			if seg.Text != tt.wantText || seg.Start != tt.wantStart || seg.Speaker != tt.speaker {
				t.Errorf("Segment mismatch: %+v", seg)
			}
			if diff := seg.Confidence - tt.confidence; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected confidence %v, got %v", tt.confidence, seg.Confidence)
			}
		})
	}

	if _, err := parser.Parse(`[{"text": "no timing"}]`, FormatJSON); err == nil {
		t.Error("Expected error for segment without start time")
	}
	if _, err := parser.Parse(`not json`, FormatJSON); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestParseUnsupported(t *testing.T) {
	if _, err := NewParser().Parse("x", TranscriptFormat("docx")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    TranscriptFormat
	}{
		{"vtt extension", "talk.VTT", "", FormatVTT},
		{"srt extension", "talk.srt", "", FormatSRT},
		{"json extension", "whisperx.json", "", FormatJSON},
		{"vtt header", "", "WEBVTT\n\n00:00.000 --> 00:01.000\nhi", FormatVTT},
		{"json content", "", `  {"segments": []}`, FormatJSON},
		{"srt content", "", "1\n00:00:00,000 --> 00:00:01,000\nhi", FormatSRT},
		{"plain", "notes.txt", "just words", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.file, tt.content); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/captions":
			w.Header().Set("Content-Type", "text/vtt")
			w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:02.000\nFetched caption"))
		case "/big.json":
			w.Write([]byte(strings.Repeat(" ", 2048)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	opts := DefaultFetchOptions()
	opts.MaxSize = 1024
	fetcher := NewFetcher(opts)
	ctx := context.Background()

	transcript, err := fetcher.Fetch(ctx, server.URL+"/captions")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if transcript.Format != FormatVTT || len(transcript.Segments) != 1 || transcript.Segments[0].Text != "Fetched caption" {
		t.Errorf("Unexpected transcript: %+v", transcript)
	}

	if _, err := fetcher.Fetch(ctx, server.URL+"/missing.vtt"); err == nil {
		t.Error("Expected error for 404")
	}
	if _, err := fetcher.Fetch(ctx, server.URL+"/big.json"); err == nil {
		t.Error("Expected error for oversized transcript")
	}
	if _, err := fetcher.Fetch(ctx, "ftp://example.com/a.vtt"); err == nil {
		t.Error("Expected error for unsupported scheme")
	}
}
