package types

import (
	"context"

	"github.com/killallgit/timeline-api/internal/database"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/pkg/transcript"
)

// TranscriptFetcher downloads transcripts used to seed timelines
type TranscriptFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*transcript.Transcript, error)
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	Sessions          *sessions.Manager
	TranscriptFetcher TranscriptFetcher
}
