package segment

import (
	"math"
	"sort"

	"github.com/killallgit/timeline-api/internal/models"
)

// EdgeSide tells which end of a clip an edge belongs to
type EdgeSide string

const (
	EdgeStart EdgeSide = "start"
	EdgeEnd   EdgeSide = "end"
)

// Edge is a clip boundary found by FindNearestEdge
type Edge struct {
	TrackID  string   `json:"track_id"`
	ClipID   string   `json:"clip_id"`
	Side     EdgeSide `json:"side"`
	Time     float64  `json:"time"`
	Distance float64  `json:"distance"`
}

// Interval is a half-open [Start, End) span of timeline time
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Length returns End - Start
func (i Interval) Length() float64 {
	return i.End - i.Start
}

// Overlap is a pair of enabled clips whose intervals intersect
type Overlap struct {
	ClipA        string   `json:"clip_a"`
	ClipB        string   `json:"clip_b"`
	Intersection Interval `json:"intersection"`
}

// Statistics summarizes a track
type Statistics struct {
	TrackID       string     `json:"track_id"`
	ClipCount     int        `json:"clip_count"`
	TotalDuration float64    `json:"total_duration"`
	MeanDuration  float64    `json:"mean_duration"`
	LongestClip   string     `json:"longest_clip,omitempty"`
	Longest       float64    `json:"longest"`
	ShortestClip  string     `json:"shortest_clip,omitempty"`
	Shortest      float64    `json:"shortest"`
	TrackStart    float64    `json:"track_start"`
	TrackEnd      float64    `json:"track_end"`
	Coverage      float64    `json:"coverage"`
	Gaps          []Interval `json:"gaps"`
	Overlaps      []Overlap  `json:"overlaps"`
}

// FindNearestEdge returns the clip start or end closest to t across all tracks, if
// one lies within tolerance. Clips listed in exclude are skipped, which lets a
// dragged clip ignore its own edges. On equal distance the earlier track and clip win.
func FindNearestEdge(tracks []models.Track, t, tolerance float64, exclude ...string) (Edge, bool) {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var best Edge
	found := false
	consider := func(trackID, clipID string, side EdgeSide, at float64) {
		d := math.Abs(at - t)
		if d > tolerance+epsilon {
			return
		}
		if !found || d < best.Distance-epsilon {
			best = Edge{TrackID: trackID, ClipID: clipID, Side: side, Time: at, Distance: d}
			found = true
		}
	}

	for _, track := range tracks {
		for _, c := range track.Clips {
			if skip[c.ID] {
				continue
			}
			consider(track.ID, c.ID, EdgeStart, c.Start)
			consider(track.ID, c.ID, EdgeEnd, c.End)
		}
	}
	return best, found
}

// DetectGaps lists the empty spans between consecutive enabled clips that are at
// least minGap long. Space before the first clip is not reported.
func DetectGaps(track models.Track, minGap float64) []Interval {
	clips := sortedEnabled(track)
	gaps := make([]Interval, 0)
	if len(clips) < 2 {
		return gaps
	}
	reach := clips[0].End
	for _, c := range clips[1:] {
		if c.Start-reach >= minGap-epsilon && c.Start-reach > epsilon {
			gaps = append(gaps, Interval{Start: reach, End: c.Start})
		}
		if c.End > reach {
			reach = c.End
		}
	}
	return gaps
}

// DetectOverlaps lists every pair of enabled clips whose intervals intersect,
// ordered by intersection start
func DetectOverlaps(track models.Track) []Overlap {
	clips := sortedEnabled(track)
	overlaps := make([]Overlap, 0)
	for i := 0; i < len(clips); i++ {
		for j := i + 1; j < len(clips); j++ {
			if clips[j].Start >= clips[i].End-epsilon {
				break
			}
			overlaps = append(overlaps, Overlap{
				ClipA: clips[i].ID,
				ClipB: clips[j].ID,
				Intersection: Interval{
					Start: clips[j].Start,
					End:   math.Min(clips[i].End, clips[j].End),
				},
			})
		}
	}
	sort.SliceStable(overlaps, func(a, b int) bool {
		return overlaps[a].Intersection.Start < overlaps[b].Intersection.Start
	})
	return overlaps
}

// Overlaps returns the enabled clips of the track that intersect [start, end),
// ignoring the ids in exclude
func Overlaps(track models.Track, start, end float64, exclude ...string) []models.Clip {
	var hits []models.Clip
	for _, c := range track.Clips {
		if !c.Enabled() || contains(exclude, c.ID) {
			continue
		}
		if c.Start < end-epsilon && start < c.End-epsilon {
			hits = append(hits, c)
		}
	}
	return hits
}

// TrackStatistics aggregates durations, gaps, overlaps and coverage of the enabled
// clips of a track. Coverage is total clip duration over the span from the first
// clip start to the last clip end.
func TrackStatistics(track models.Track) Statistics {
	stats := Statistics{
		TrackID:  track.ID,
		Gaps:     DetectGaps(track, 0),
		Overlaps: DetectOverlaps(track),
	}
	clips := sortedEnabled(track)
	if len(clips) == 0 {
		return stats
	}

	stats.ClipCount = len(clips)
	stats.TrackStart = clips[0].Start
	stats.Shortest = math.Inf(1)
	for _, c := range clips {
		d := c.Duration()
		stats.TotalDuration += d
		if d > stats.Longest {
			stats.Longest = d
			stats.LongestClip = c.ID
		}
		if d < stats.Shortest {
			stats.Shortest = d
			stats.ShortestClip = c.ID
		}
		if c.End > stats.TrackEnd {
			stats.TrackEnd = c.End
		}
	}
	stats.MeanDuration = stats.TotalDuration / float64(len(clips))
	if span := stats.TrackEnd - stats.TrackStart; span > 0 {
		stats.Coverage = stats.TotalDuration / span
	}
	return stats
}

func sortedEnabled(track models.Track) []models.Clip {
	clips := track.EnabledClips()
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].Start < clips[j].Start
	})
	return clips
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
