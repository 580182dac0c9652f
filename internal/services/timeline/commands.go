package timeline

import (
	"fmt"

	"github.com/killallgit/timeline-api/internal/models"
)

// command is a reversible mutation of one track. apply re-does the edit on a
// state that is exactly as it was before the edit; revert restores it.
//
// All variants follow the same shape: apply removes the clips it replaces,
// appends the new ones and stable-sorts; revert removes the new clips and puts
// the originals back at the indices they held. Since clip lists are always
// sorted, this round-trips to the identical list.
type command interface {
	apply(s *models.TimelineState) error
	revert(s *models.TimelineState) error
}

// placedClip is a deep clip copy plus the index it occupied in its track
type placedClip struct {
	Index int
	Clip  models.Clip
}

type clipEditCmd struct {
	trackID string
	before  placedClip
	after   models.Clip
}

type clipDeleteCmd struct {
	trackID string
	removed placedClip
}

type clipInsertCmd struct {
	trackID string
	clip    models.Clip
}

// clipSplitCmd covers both split and extract: one clip replaced by contiguous pieces
type clipSplitCmd struct {
	trackID  string
	original placedClip
	pieces   []models.Clip
}

type clipMergeCmd struct {
	trackID string
	earlier placedClip
	later   placedClip
	merged  models.Clip
}

type trackProps struct {
	Name    string
	Visible bool
	Muted   bool
	Locked  bool
	Volume  float64
	Opacity float64
}

type trackEditCmd struct {
	trackID string
	before  trackProps
	after   trackProps
}

func (c *clipEditCmd) apply(s *models.TimelineState) error {
	return replaceClips(s, c.trackID, []string{c.before.Clip.ID}, []models.Clip{c.after})
}

func (c *clipEditCmd) revert(s *models.TimelineState) error {
	return restoreClips(s, c.trackID, []string{c.after.ID}, []placedClip{c.before})
}

func (c *clipDeleteCmd) apply(s *models.TimelineState) error {
	return replaceClips(s, c.trackID, []string{c.removed.Clip.ID}, nil)
}

func (c *clipDeleteCmd) revert(s *models.TimelineState) error {
	return restoreClips(s, c.trackID, nil, []placedClip{c.removed})
}

func (c *clipInsertCmd) apply(s *models.TimelineState) error {
	return replaceClips(s, c.trackID, nil, []models.Clip{c.clip})
}

func (c *clipInsertCmd) revert(s *models.TimelineState) error {
	return restoreClips(s, c.trackID, []string{c.clip.ID}, nil)
}

func (c *clipSplitCmd) apply(s *models.TimelineState) error {
	return replaceClips(s, c.trackID, []string{c.original.Clip.ID}, c.pieces)
}

func (c *clipSplitCmd) revert(s *models.TimelineState) error {
	ids := make([]string, len(c.pieces))
	for i, p := range c.pieces {
		ids[i] = p.ID
	}
	return restoreClips(s, c.trackID, ids, []placedClip{c.original})
}

func (c *clipMergeCmd) apply(s *models.TimelineState) error {
	return replaceClips(s, c.trackID, []string{c.earlier.Clip.ID, c.later.Clip.ID}, []models.Clip{c.merged})
}

func (c *clipMergeCmd) revert(s *models.TimelineState) error {
	originals := []placedClip{c.earlier, c.later}
	if c.later.Index < c.earlier.Index {
		originals = []placedClip{c.later, c.earlier}
	}
	return restoreClips(s, c.trackID, []string{c.merged.ID}, originals)
}

func (c *trackEditCmd) apply(s *models.TimelineState) error {
	return setTrackProps(s, c.trackID, c.after)
}

func (c *trackEditCmd) revert(s *models.TimelineState) error {
	return setTrackProps(s, c.trackID, c.before)
}

func propsOf(t *models.Track) trackProps {
	return trackProps{
		Name:    t.Name,
		Visible: t.Visible,
		Muted:   t.Muted,
		Locked:  t.Locked,
		Volume:  t.Volume,
		Opacity: t.Opacity,
	}
}

func setTrackProps(s *models.TimelineState, trackID string, p trackProps) error {
	track := s.Track(trackID)
	if track == nil {
		return fmt.Errorf("track %s not found", trackID)
	}
	track.Name = p.Name
	track.Visible = p.Visible
	track.Muted = p.Muted
	track.Locked = p.Locked
	track.Volume = p.Volume
	track.Opacity = p.Opacity
	return nil
}

// replaceClips removes the clips with the given ids, appends deep copies of add
// and re-sorts the track. Nothing is touched if any id is missing.
func replaceClips(s *models.TimelineState, trackID string, removeIDs []string, add []models.Clip) error {
	track := s.Track(trackID)
	if track == nil {
		return fmt.Errorf("track %s not found", trackID)
	}
	for _, id := range removeIDs {
		if track.ClipIndex(id) < 0 {
			return fmt.Errorf("clip %s not found in track %s", id, trackID)
		}
	}
	for _, id := range removeIDs {
		i := track.ClipIndex(id)
		track.Clips = append(track.Clips[:i], track.Clips[i+1:]...)
	}
	for _, c := range add {
		track.Clips = append(track.Clips, c.Clone())
	}
	track.SortClips()
	s.RecomputeDuration()
	return nil
}

// restoreClips removes the clips with the given ids and reinserts originals at
// their recorded indices, lowest index first
func restoreClips(s *models.TimelineState, trackID string, removeIDs []string, originals []placedClip) error {
	track := s.Track(trackID)
	if track == nil {
		return fmt.Errorf("track %s not found", trackID)
	}
	for _, id := range removeIDs {
		if track.ClipIndex(id) < 0 {
			return fmt.Errorf("clip %s not found in track %s", id, trackID)
		}
	}
	for _, id := range removeIDs {
		i := track.ClipIndex(id)
		track.Clips = append(track.Clips[:i], track.Clips[i+1:]...)
	}
	for _, p := range originals {
		i := p.Index
		if i > len(track.Clips) {
			i = len(track.Clips)
		}
		track.Clips = append(track.Clips, models.Clip{})
		copy(track.Clips[i+1:], track.Clips[i:])
		track.Clips[i] = p.Clip.Clone()
	}
	s.RecomputeDuration()
	return nil
}
