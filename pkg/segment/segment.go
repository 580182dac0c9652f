// Package segment implements pure editing operations on clips and tracks.
//
// Nothing in this package mutates its arguments. Every operation returns fresh
// values, or an *errors.AppError carrying a reason code when the edit is not
// allowed (locked clip, out of range time, type mismatch and so on).
package segment

import (
	"math"
	"strings"

	"github.com/killallgit/timeline-api/internal/models"
)

const (
	minDuration = models.MinClipDuration
	adjacency   = models.AdjacencyTolerance
	epsilon     = 1e-9
)

// MergeResult is the outcome of MergeAdjacent.
// ErasedGap is later.Start - earlier.End; it is negative when a small overlap was absorbed.
type MergeResult struct {
	Clip      models.Clip
	ErasedGap float64
}

// ExtractResult is the outcome of ExtractRange. Before and After are nil when the
// range touches the corresponding clip edge.
type ExtractResult struct {
	Extracted models.Clip
	Before    *models.Clip
	After     *models.Clip
}

// Pieces returns the resulting clips in timeline order
func (r ExtractResult) Pieces() []models.Clip {
	out := make([]models.Clip, 0, 3)
	if r.Before != nil {
		out = append(out, *r.Before)
	}
	out = append(out, r.Extracted)
	if r.After != nil {
		out = append(out, *r.After)
	}
	return out
}

// CutAt splits the clip at timeline time t. The left part keeps the clip id, the
// right part gets a new one. Both parts must satisfy the minimum duration.
func CutAt(track models.Track, clipID string, t float64) (models.Clip, models.Clip, error) {
	idx := track.ClipIndex(clipID)
	if idx < 0 {
		return models.Clip{}, models.Clip{}, clipNotFound(clipID)
	}
	clip := track.Clips[idx]
	if clip.Locked {
		return models.Clip{}, models.Clip{}, locked(clip.ID)
	}
	if t <= clip.Start+minDuration-epsilon || t >= clip.End-minDuration+epsilon {
		return models.Clip{}, models.Clip{}, outOfRange(clip.ID, t, clip.Start, clip.End)
	}

	left := clip.Clone()
	right := clip.Clone()
	left.End = t
	right.ID = models.NewClipID()
	right.Start = t

	if clip.HasSource() {
		ratio := (t - clip.Start) / clip.Duration()
		cut := *clip.SourceStart + ratio*(*clip.SourceEnd-*clip.SourceStart)
		left.SetSource(*clip.SourceStart, cut)
		right.SetSource(cut, *clip.SourceEnd)
	}

	offset := t - clip.Start
	left.Effects = splitEffects(clip.Effects, 0, offset)
	right.Effects = splitEffects(clip.Effects, offset, clip.Duration())
	return left, right, nil
}

// Trim moves the start and/or end of a clip. Source bounds shift by the same delta
// as the timeline bounds they belong to.
func Trim(clip models.Clip, newStart, newEnd *float64) (models.Clip, error) {
	start, end := clip.Start, clip.End
	if newStart != nil {
		start = *newStart
	}
	if newEnd != nil {
		end = *newEnd
	}
	if start < 0 || start >= end {
		return models.Clip{}, invalidRange(start, end, "start must be non-negative and before end")
	}
	if end-start < minDuration-epsilon {
		return models.Clip{}, tooShort(end - start)
	}

	out := clip.Clone()
	out.Start, out.End = start, end
	if clip.HasSource() {
		srcStart := *clip.SourceStart + (start - clip.Start)
		srcEnd := *clip.SourceEnd + (end - clip.End)
		if srcStart < -epsilon {
			return models.Clip{}, invalidRange(start, end, "trim extends before the start of the source media")
		}
		out.SetSource(math.Max(srcStart, 0), srcEnd)
	}
	out.Effects = clampEffects(out.Effects, clip.Start-start, out.Duration())
	return out, nil
}

// Move shifts a clip to a new start time keeping its duration and source mapping
func Move(clip models.Clip, newStart float64) (models.Clip, error) {
	if newStart < 0 {
		return models.Clip{}, invalidRange(newStart, newStart+clip.Duration(), "start must be non-negative")
	}
	out := clip.Clone()
	d := clip.Duration()
	out.Start = newStart
	out.End = newStart + d
	return out, nil
}

// MergeAdjacent joins two touching clips into one spanning [earlier.Start, later.End).
// The merged clip keeps the earlier clip's id, flags and clip-wide effects; bounded
// effects of the later clip are re-based onto the merged clip. A gap of up to the
// adjacency tolerance is erased and reported on the result.
func MergeAdjacent(a, b models.Clip) (MergeResult, error) {
	if a.Kind != b.Kind {
		return MergeResult{}, typeMismatch(string(a.Kind), string(b.Kind))
	}
	if a.Locked {
		return MergeResult{}, locked(a.ID)
	}
	if b.Locked {
		return MergeResult{}, locked(b.ID)
	}
	earlier, later := a, b
	if b.Start < a.Start {
		earlier, later = b, a
	}
	gap := later.Start - earlier.End
	if math.Abs(gap) > adjacency+epsilon {
		return MergeResult{}, notAdjacent(gap)
	}

	merged := earlier.Clone()
	merged.End = later.End
	if earlier.HasSource() {
		merged.SetSource(*earlier.SourceStart, *earlier.SourceStart+merged.Duration())
	}

	shift := later.Start - earlier.Start
	for _, e := range later.Effects {
		if !e.Bounded() {
			continue
		}
		c := e.Clone()
		c.ID = models.NewEffectID()
		if c.Start != nil {
			*c.Start += shift
		}
		if c.End != nil {
			*c.End += shift
		}
		merged.Effects = append(merged.Effects, c)
	}

	if earlier.Kind == models.TrackKindText {
		merged.Payload = mergeText(earlier, later)
		merged.Label = models.LabelPreview(merged.Text())
	}

	return MergeResult{Clip: merged, ErasedGap: gap}, nil
}

func mergeText(earlier, later models.Clip) models.Payload {
	ep, _ := earlier.Payload.(models.TextPayload)
	lp, _ := later.Payload.(models.TextPayload)

	text := strings.TrimSpace(strings.TrimSpace(ep.Text) + " " + strings.TrimSpace(lp.Text))
	ed, ld := earlier.Duration(), later.Duration()
	confidence := ep.Confidence
	if ed+ld > 0 {
		confidence = (ep.Confidence*ed + lp.Confidence*ld) / (ed + ld)
	}
	speaker := ep.Speaker
	if speaker == "" {
		speaker = lp.Speaker
	}
	return models.TextPayload{Text: text, Speaker: speaker, Confidence: confidence}
}

// Duplicate returns a copy of the clip placed at insertTime with a new id and
// freshly identified effects
func Duplicate(clip models.Clip, insertTime float64) (models.Clip, error) {
	if insertTime < 0 {
		return models.Clip{}, invalidRange(insertTime, insertTime+clip.Duration(), "insert time must be non-negative")
	}
	out := clip.Clone()
	out.ID = models.NewClipID()
	out.Start = insertTime
	out.End = insertTime + clip.Duration()
	for i := range out.Effects {
		out.Effects[i].ID = models.NewEffectID()
	}
	return out, nil
}

// ExtractRange isolates [rangeStart, rangeEnd) of the clip. The first resulting
// piece keeps the clip id; remainders and the extracted piece carry offset source
// bounds so that their source spans add up to the original.
func ExtractRange(clip models.Clip, rangeStart, rangeEnd float64) (ExtractResult, error) {
	if clip.Locked {
		return ExtractResult{}, locked(clip.ID)
	}
	if rangeStart >= rangeEnd || rangeStart < clip.Start-epsilon || rangeEnd > clip.End+epsilon {
		return ExtractResult{}, invalidRange(rangeStart, rangeEnd, "range must lie within the clip")
	}
	rangeStart = math.Max(rangeStart, clip.Start)
	rangeEnd = math.Min(rangeEnd, clip.End)
	if rangeEnd-rangeStart < minDuration-epsilon {
		return ExtractResult{}, invalidRange(rangeStart, rangeEnd, "extracted range is shorter than the minimum clip duration")
	}
	before := rangeStart - clip.Start
	after := clip.End - rangeEnd
	if (before > epsilon && before < minDuration-epsilon) || (after > epsilon && after < minDuration-epsilon) {
		return ExtractResult{}, invalidRange(rangeStart, rangeEnd, "remainder would be shorter than the minimum clip duration")
	}

	piece := func(start, end float64) models.Clip {
		c := clip.Clone()
		c.ID = models.NewClipID()
		c.Start, c.End = start, end
		if clip.HasSource() {
			c.SetSource(*clip.SourceStart+(start-clip.Start), *clip.SourceStart+(end-clip.Start))
		}
		c.Effects = splitEffects(clip.Effects, start-clip.Start, end-clip.Start)
		return c
	}

	var result ExtractResult
	if before > epsilon {
		b := piece(clip.Start, rangeStart)
		result.Before = &b
	}
	result.Extracted = piece(rangeStart, rangeEnd)
	if after > epsilon {
		a := piece(rangeEnd, clip.End)
		result.After = &a
	}
	if result.Before != nil {
		result.Before.ID = clip.ID
	} else {
		result.Extracted.ID = clip.ID
	}
	if clip.HasSource() && result.After != nil {
		// keep the last source bound exact rather than recomputed
		result.After.SetSource(*result.After.SourceStart, *clip.SourceEnd)
	}
	return result, nil
}

// SnapToGrid rounds t to the nearest multiple of interval, then to the nearest frame
// boundary when frameRate is positive
func SnapToGrid(t, interval, frameRate float64) float64 {
	if interval > 0 {
		t = math.Round(t/interval) * interval
	}
	if frameRate > 0 {
		t = math.Round(t*frameRate) / frameRate
	}
	return math.Round(t*1e9) / 1e9
}

// splitEffects returns fresh copies of the effects that touch the local window
// [from, to), re-based so the window starts at zero
func splitEffects(effects []models.Effect, from, to float64) []models.Effect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]models.Effect, 0, len(effects))
	for _, e := range effects {
		c := e.Clone()
		c.ID = models.NewEffectID()
		if !e.Bounded() {
			out = append(out, c)
			continue
		}
		s, en := from, to
		if e.Start != nil {
			s = math.Max(*e.Start, from)
		}
		if e.End != nil {
			en = math.Min(*e.End, to)
		}
		if en-s <= epsilon {
			continue
		}
		if c.Start != nil {
			*c.Start = s - from
		}
		if c.End != nil {
			*c.End = en - from
		}
		out = append(out, c)
	}
	return out
}

// clampEffects shifts bounded effects by delta and drops those that no longer fit
// within [0, length)
func clampEffects(effects []models.Effect, delta, length float64) []models.Effect {
	if len(effects) == 0 {
		return effects
	}
	out := make([]models.Effect, 0, len(effects))
	for _, e := range effects {
		if !e.Bounded() {
			out = append(out, e)
			continue
		}
		s, en := 0.0, length
		if e.Start != nil {
			s = math.Max(*e.Start+delta, 0)
			*e.Start = s
		}
		if e.End != nil {
			en = math.Min(*e.End+delta, length)
			*e.End = en
		}
		if en-s > epsilon {
			out = append(out, e)
		}
	}
	return out
}
