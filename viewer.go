package lumiere

import (
	"regexp"
	"strings"
)

var reVideoID = regexp.MustCompile(`(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// VideoID extracts the 11-character platform video id from a recognized
// video URL shape, or returns "" when the URL does not carry one.
func VideoID(url string) string {
	m := reVideoID.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return ""
	}
	return m[2]
}

// IsBareVideoURL reports whether s, trimmed, is nothing but a recognized
// video URL: no embedded whitespace and a valid extractable id. This is the
// sniff that drives the one-shot TEXT to VIDEO conversion.
func IsBareVideoURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	return VideoID(s) != ""
}

// RenderKind classifies how a block type is presented in the section stream.
type RenderKind int

const (
	// RenderNone covers HEADER (consumed by segmentation, rendered once as
	// the section title) and QUIZ (no renderer exists; renders nothing).
	RenderNone RenderKind = iota
	RenderText
	RenderImage
	RenderVideo
	RenderTabs
)

// BlockRenderKind is total over every block type; unknown types render
// nothing rather than failing.
func BlockRenderKind(t BlockType) RenderKind {
	switch t {
	case BlockText:
		return RenderText
	case BlockImage:
		return RenderImage
	case BlockVideo:
		return RenderVideo
	case BlockTabs:
		return RenderTabs
	default:
		return RenderNone
	}
}

// SectionBounds is one rendered section container's vertical extent in
// document space.
type SectionBounds struct {
	Top    float64
	Bottom float64
}

// ScrollTracker mirrors the viewer's scroll state: overall reading progress
// and the index of the section currently straddling the viewport reference
// line (one third down the viewport). The bounds list includes the synthetic
// hero container at index 0 and the end container at the final index.
type ScrollTracker struct {
	bounds   []SectionBounds
	progress float64
	active   int
}

// SetBounds replaces the tracked section geometry. The active index is
// clamped into the new range so a shrinking layout cannot strand it.
func (t *ScrollTracker) SetBounds(bounds []SectionBounds) {
	t.bounds = bounds
	if t.active >= len(bounds) {
		t.active = len(bounds) - 1
	}
	if t.active < 0 {
		t.active = 0
	}
}

// Observe processes one scroll event: progress is computed first, then the
// active-section test, so both values read after the call form a consistent
// pairing. Progress is scrollTop over total scrollable distance, clamped to
// [0,1], and exactly 0 when nothing is scrollable.
func (t *ScrollTracker) Observe(scrollTop, scrollHeight, clientHeight float64) {
	scrollable := scrollHeight - clientHeight
	if scrollable <= 0 {
		t.progress = 0
	} else {
		p := scrollTop / scrollable
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		t.progress = p
	}

	ref := scrollTop + clientHeight/3
	for i, b := range t.bounds {
		if b.Top <= ref && b.Bottom >= ref {
			t.active = i
		}
	}
}

// Progress returns the last computed scroll fraction in [0,1].
func (t *ScrollTracker) Progress() float64 { return t.progress }

// ActiveSection returns the last computed active section index.
func (t *ScrollTracker) ActiveSection() int { return t.active }

// ScrollTarget returns the document offset a chapter-navigation jump to
// index should scroll to. Once the scroll lands there, Observe converges on
// the same index organically.
func (t *ScrollTracker) ScrollTarget(index int) float64 {
	if len(t.bounds) == 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= len(t.bounds) {
		index = len(t.bounds) - 1
	}
	return t.bounds[index].Top
}

// Viewer is the presentation engine for one immutable Course: its derived
// sections, the scroll tracker, and the cinematic overlay state.
type Viewer struct {
	Course   Course
	Sections []CourseSection

	tracker   ScrollTracker
	cinematic string
}

// NewViewer segments the course and prepares a fresh tracker.
func NewViewer(c Course) *Viewer {
	return &Viewer{
		Course:   c,
		Sections: Segment(c.Blocks),
	}
}

// Tracker exposes the viewer's scroll tracker.
func (v *Viewer) Tracker() *ScrollTracker { return &v.tracker }

// EnterCinematic opens the full-viewport overlay on the given video id.
func (v *Viewer) EnterCinematic(videoID string) {
	if videoID != "" {
		v.cinematic = videoID
	}
}

// ExitCinematic closes the overlay. There is no timer; only explicit exit.
func (v *Viewer) ExitCinematic() { v.cinematic = "" }

// CinematicVideoID returns the overlay's video id, or "" when closed.
func (v *Viewer) CinematicVideoID() string { return v.cinematic }

// NavLabels returns one chapter-navigation label per tracked container:
// the hero, each section (header title, or "Intro" for the headerless
// intro section), and the closing container.
func (v *Viewer) NavLabels() []string { return NavLabels(v.Sections) }

// NavLabels builds the chapter-navigation labels for a segmented course.
// An "Act " header prefix is dropped so dots stay short.
func NavLabels(sections []CourseSection) []string {
	labels := make([]string, 0, len(sections)+2)
	labels = append(labels, "Start")
	for _, s := range sections {
		if s.Header != nil {
			labels = append(labels, strings.TrimPrefix(s.Header.Content, "Act "))
		} else {
			labels = append(labels, "Intro")
		}
	}
	labels = append(labels, "Fin.")
	return labels
}
