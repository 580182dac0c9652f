package transcript

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TranscriptFormat represents the format of a transcript
type TranscriptFormat string

const (
	FormatVTT  TranscriptFormat = "vtt"
	FormatSRT  TranscriptFormat = "srt"
	FormatJSON TranscriptFormat = "json"
	FormatText TranscriptFormat = "text"
)

// Segment is one timed caption. Confidence is zero when the source has none.
type Segment struct {
	Start      time.Duration
	End        time.Duration
	Text       string
	Speaker    string
	Confidence float64
}

// Transcript represents a parsed transcript
type Transcript struct {
	Format   TranscriptFormat
	Segments []Segment
	FullText string
	Duration time.Duration
}

var (
	// VTT cue timings, hours optional (e.g. "00:01.000 --> 00:00:05.000")
	vttTimingRegex = regexp.MustCompile(`((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})\s*-->\s*((?:\d{2,}:)?\d{2}:\d{2}\.\d{3})`)
	srtTimingRegex = regexp.MustCompile(`(\d{2,}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2},\d{3})`)
	voiceRegex     = regexp.MustCompile(`<v(?:\.[^\s>]+)*\s+([^>]+)>`)
	tagRegex       = regexp.MustCompile(`</?[^>]+>`)
)

// Parser handles parsing different transcript formats
type Parser struct{}

// NewParser creates a new transcript parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses transcript content based on its format
func (p *Parser) Parse(content string, format TranscriptFormat) (*Transcript, error) {
	content = strings.TrimPrefix(strings.ReplaceAll(content, "\r\n", "\n"), "\ufeff")

	var t *Transcript
	var err error
	switch format {
	case FormatVTT:
		t, err = p.parseVTT(content)
	case FormatSRT:
		t, err = p.parseSRT(content)
	case FormatJSON:
		t, err = p.parseJSON(content)
	case FormatText:
		t = &Transcript{Format: FormatText, Segments: []Segment{}, FullText: strings.TrimSpace(content)}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	t.finish()
	return t, nil
}

// DetectFormat guesses the format from a file name, falling back to the content
func DetectFormat(name, content string) TranscriptFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vtt":
		return FormatVTT
	case ".srt":
		return FormatSRT
	case ".json":
		return FormatJSON
	}

	trimmed := strings.TrimSpace(strings.TrimPrefix(content, "\ufeff"))
	switch {
	case strings.HasPrefix(trimmed, "WEBVTT"):
		return FormatVTT
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return FormatJSON
	case srtTimingRegex.MatchString(trimmed):
		return FormatSRT
	default:
		return FormatText
	}
}

// cue accumulates the text lines of one VTT or SRT cue
type cue struct {
	seg   *Segment
	lines []string
}

func (c *cue) flush(t *Transcript) {
	if c.seg != nil && len(c.lines) > 0 {
		c.seg.Text = strings.Join(c.lines, " ")
		t.Segments = append(t.Segments, *c.seg)
	}
	c.seg = nil
	c.lines = nil
}

// parseVTT parses WebVTT cues. A <v Speaker> voice tag sets the segment speaker.
func (p *Parser) parseVTT(content string) (*Transcript, error) {
	t := &Transcript{Format: FormatVTT, Segments: []Segment{}}
	var c cue
	skipBlock := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			c.flush(t)
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}
		if m := vttTimingRegex.FindStringSubmatch(line); m != nil {
			c.flush(t)
			start, err := parseTimestamp(m[1])
			if err != nil {
				return nil, err
			}
			end, err := parseTimestamp(m[2])
			if err != nil {
				return nil, err
			}
			c.seg = &Segment{Start: start, End: end}
			continue
		}

		if c.seg == nil {
			// header, comment and style blocks run to the next blank line;
			// anything else before a timing line is a cue identifier
			if strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "NOTE") ||
				strings.HasPrefix(line, "STYLE") || strings.HasPrefix(line, "REGION") {
				skipBlock = true
			}
			continue
		}
		if v := voiceRegex.FindStringSubmatch(line); v != nil && c.seg.Speaker == "" {
			c.seg.Speaker = strings.TrimSpace(v[1])
		}
		if text := stripTags(line); text != "" {
			c.lines = append(c.lines, text)
		}
	}
	c.flush(t)
	return t, nil
}

// parseSRT parses SubRip cues
func (p *Parser) parseSRT(content string) (*Transcript, error) {
	t := &Transcript{Format: FormatSRT, Segments: []Segment{}}
	var c cue

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			c.flush(t)
			continue
		}
		if m := srtTimingRegex.FindStringSubmatch(line); m != nil {
			c.flush(t)
			start, err := parseTimestamp(strings.Replace(m[1], ",", ".", 1))
			if err != nil {
				return nil, err
			}
			end, err := parseTimestamp(strings.Replace(m[2], ",", ".", 1))
			if err != nil {
				return nil, err
			}
			c.seg = &Segment{Start: start, End: end}
			continue
		}
		if c.seg == nil {
			// sequence number
			continue
		}
		if text := stripTags(line); text != "" {
			c.lines = append(c.lines, text)
		}
	}
	c.flush(t)
	return t, nil
}

// jsonSegment accepts the podcast transcript shape (startTime/endTime/body) and
// the whisperx shape (start/end/text/speaker/score/words[].score)
type jsonSegment struct {
	Start      *float64 `json:"start"`
	StartTime  *float64 `json:"startTime"`
	StartSnake *float64 `json:"start_time"`
	End        *float64 `json:"end"`
	EndTime    *float64 `json:"endTime"`
	EndSnake   *float64 `json:"end_time"`
	Text       string   `json:"text"`
	Body       string   `json:"body"`
	Speaker    string   `json:"speaker"`
	Confidence *float64 `json:"confidence"`
	Score      *float64 `json:"score"`
	Words      []struct {
		Score *float64 `json:"score"`
	} `json:"words"`
}

// parseJSON parses a JSON array of segments or an object with a segments array
func (p *Parser) parseJSON(content string) (*Transcript, error) {
	var segments []jsonSegment
	if err := json.Unmarshal([]byte(content), &segments); err != nil {
		var obj struct {
			Segments []jsonSegment `json:"segments"`
		}
		if err := json.Unmarshal([]byte(content), &obj); err != nil {
			return nil, fmt.Errorf("failed to parse JSON transcript: %w", err)
		}
		segments = obj.Segments
	}

	t := &Transcript{Format: FormatJSON, Segments: make([]Segment, 0, len(segments))}
	for i, seg := range segments {
		start, ok := firstSet(seg.Start, seg.StartTime, seg.StartSnake)
		if !ok {
			return nil, fmt.Errorf("segment %d has no start time", i)
		}
		end, ok := firstSet(seg.End, seg.EndTime, seg.EndSnake)
		if !ok {
			return nil, fmt.Errorf("segment %d has no end time", i)
		}

		text := seg.Text
		if text == "" {
			text = seg.Body
		}

		t.Segments = append(t.Segments, Segment{
			Start:      secondsToDuration(start),
			End:        secondsToDuration(end),
			Text:       strings.TrimSpace(text),
			Speaker:    seg.Speaker,
			Confidence: seg.confidence(),
		})
	}
	return t, nil
}

func (s jsonSegment) confidence() float64 {
	if s.Confidence != nil {
		return *s.Confidence
	}
	if s.Score != nil {
		return *s.Score
	}
	var sum float64
	var n int
	for _, w := range s.Words {
		if w.Score != nil {
			sum += *w.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func firstSet(values ...*float64) (float64, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// finish derives the full text and the duration from the segments
func (t *Transcript) finish() {
	if len(t.Segments) == 0 {
		return
	}
	texts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if s.Text != "" {
			texts = append(texts, s.Text)
		}
		if s.End > t.Duration {
			t.Duration = s.End
		}
	}
	t.FullText = strings.Join(texts, " ")
}

// parseTimestamp parses [HH:]MM:SS.mmm
func parseTimestamp(timestamp string) (time.Duration, error) {
	parts := strings.Split(timestamp, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp: %s", timestamp)
	}

	hours := 0
	if len(parts) == 3 {
		h, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp hours: %s", timestamp)
		}
		hours = h
		parts = parts[1:]
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp minutes: %s", timestamp)
	}

	secParts := strings.SplitN(parts[1], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp seconds: %s", timestamp)
	}
	millis := 0
	if len(secParts) == 2 {
		if millis, err = strconv.Atoi(secParts[1]); err != nil {
			return 0, fmt.Errorf("invalid timestamp milliseconds: %s", timestamp)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// stripTags removes cue markup such as <v Speaker>, <i> and <c.yellow>
func stripTags(text string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(text, ""))
}

// ToPlainText converts a transcript to plain text format
func (t *Transcript) ToPlainText() string {
	if t.FullText != "" {
		return t.FullText
	}
	texts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		texts = append(texts, s.Text)
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}
