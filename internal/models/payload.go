package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// PayloadKind discriminates the Payload variants
type PayloadKind string

const (
	PayloadKindText  PayloadKind = "text"
	PayloadKindMedia PayloadKind = "media"
)

// Payload is the kind-specific data carried by a clip.
// The interface is sealed; TextPayload and MediaPayload are the only variants.
type Payload interface {
	PayloadKind() PayloadKind
	clonePayload() Payload
}

// TextPayload carries caption data for text clips
type TextPayload struct {
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence"`
}

func (TextPayload) PayloadKind() PayloadKind { return PayloadKindText }

func (p TextPayload) clonePayload() Payload { return p }

// MediaPayload references the source asset of a video, audio or overlay clip
type MediaPayload struct {
	SourceURI string `json:"source_uri,omitempty"`
}

func (MediaPayload) PayloadKind() PayloadKind { return PayloadKindMedia }

func (p MediaPayload) clonePayload() Payload { return p }

// PayloadKindFor returns the payload variant a clip of the given kind carries
func PayloadKindFor(kind TrackKind) PayloadKind {
	if kind == TrackKindText {
		return PayloadKindText
	}
	return PayloadKindMedia
}

// LabelPreview derives a short display label from caption text
func LabelPreview(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= LabelPreviewLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:LabelPreviewLength])) + "..."
}

// PayloadEnvelope is the flat, tagged wire form of a Payload
type PayloadEnvelope struct {
	Type       PayloadKind `json:"type" yaml:"type"`
	Text       string      `json:"text,omitempty" yaml:"text,omitempty"`
	Speaker    string      `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	Confidence float64     `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	SourceURI  string      `json:"source_uri,omitempty" yaml:"source_uri,omitempty"`
}

// EncodePayload converts a payload to its envelope; nil stays nil
func EncodePayload(p Payload) *PayloadEnvelope {
	switch v := p.(type) {
	case TextPayload:
		return &PayloadEnvelope{Type: PayloadKindText, Text: v.Text, Speaker: v.Speaker, Confidence: v.Confidence}
	case MediaPayload:
		return &PayloadEnvelope{Type: PayloadKindMedia, SourceURI: v.SourceURI}
	}
	return nil
}

// Decode converts the envelope back to its payload variant
func (e *PayloadEnvelope) Decode() (Payload, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Type {
	case PayloadKindText:
		return TextPayload{Text: e.Text, Speaker: e.Speaker, Confidence: e.Confidence}, nil
	case PayloadKindMedia:
		return MediaPayload{SourceURI: e.SourceURI}, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", e.Type)
	}
}

type clipAlias Clip

type clipJSON struct {
	clipAlias
	Payload *PayloadEnvelope `json:"payload,omitempty"`
}

// MarshalJSON writes the clip with its payload in envelope form
func (c Clip) MarshalJSON() ([]byte, error) {
	return json.Marshal(clipJSON{clipAlias: clipAlias(c), Payload: EncodePayload(c.Payload)})
}

// UnmarshalJSON reads a clip whose payload is in envelope form
func (c *Clip) UnmarshalJSON(data []byte) error {
	var raw clipJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	payload, err := raw.Payload.Decode()
	if err != nil {
		return err
	}
	*c = Clip(raw.clipAlias)
	c.Payload = payload
	return nil
}
