package lumiere

import "testing"

func TestVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=short", ""},
		{"https://example.com/video.mp4", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := VideoID(c.url); got != c.want {
			t.Errorf("VideoID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestIsBareVideoURL(t *testing.T) {
	if !IsBareVideoURL("  https://www.youtube.com/watch?v=dQw4w9WgXcQ  ") {
		t.Error("trimmed bare URL should qualify")
	}
	if IsBareVideoURL("check this out https://www.youtube.com/watch?v=dQw4w9WgXcQ") {
		t.Error("URL with surrounding prose should not qualify")
	}
	if IsBareVideoURL("https://example.com/page") {
		t.Error("non-video URL should not qualify")
	}
	if IsBareVideoURL("") {
		t.Error("empty string should not qualify")
	}
}

func TestBlockRenderKindTotal(t *testing.T) {
	kinds := map[BlockType]RenderKind{
		BlockText:   RenderText,
		BlockImage:  RenderImage,
		BlockVideo:  RenderVideo,
		BlockTabs:   RenderTabs,
		BlockHeader: RenderNone,
		BlockQuiz:   RenderNone,
	}
	for bt, want := range kinds {
		if got := BlockRenderKind(bt); got != want {
			t.Errorf("BlockRenderKind(%s) = %v, want %v", bt, got, want)
		}
	}
	if got := BlockRenderKind(BlockType("FUTURE")); got != RenderNone {
		t.Errorf("unknown type should render nothing, got %v", got)
	}
}

func TestScrollTrackerProgress(t *testing.T) {
	var tr ScrollTracker

	tr.Observe(0, 500, 800)
	if tr.Progress() != 0 {
		t.Errorf("unscrollable page progress = %v, want 0", tr.Progress())
	}

	tr.Observe(500, 1800, 800)
	if tr.Progress() != 0.5 {
		t.Errorf("midway progress = %v, want 0.5", tr.Progress())
	}

	tr.Observe(2000, 1800, 800)
	if tr.Progress() != 1 {
		t.Errorf("overscrolled progress = %v, want 1", tr.Progress())
	}

	tr.Observe(-50, 1800, 800)
	if tr.Progress() != 0 {
		t.Errorf("rubber-band progress = %v, want 0", tr.Progress())
	}
}

func TestScrollTrackerActiveSection(t *testing.T) {
	var tr ScrollTracker
	tr.SetBounds([]SectionBounds{
		{Top: 0, Bottom: 800},
		{Top: 800, Bottom: 1600},
		{Top: 1600, Bottom: 2400},
	})

	// Reference line sits at scrollTop + clientHeight/3.
	tr.Observe(0, 2400, 900)
	if tr.ActiveSection() != 0 {
		t.Errorf("at top, active = %d, want 0", tr.ActiveSection())
	}

	tr.Observe(900, 2400, 900) // ref at 1200, inside second container
	if tr.ActiveSection() != 1 {
		t.Errorf("mid-scroll, active = %d, want 1", tr.ActiveSection())
	}

	tr.Observe(1500, 2400, 900) // ref at 1800, inside third
	if tr.ActiveSection() != 2 {
		t.Errorf("deep scroll, active = %d, want 2", tr.ActiveSection())
	}

	// A gap in the bounds keeps the previous active index.
	tr.SetBounds([]SectionBounds{{Top: 0, Bottom: 100}})
	tr.Observe(5000, 10000, 900)
	if tr.ActiveSection() != 0 {
		t.Errorf("no straddling container, active = %d, want retained 0", tr.ActiveSection())
	}
}

func TestScrollTrackerScrollTarget(t *testing.T) {
	var tr ScrollTracker
	tr.SetBounds([]SectionBounds{{Top: 0, Bottom: 800}, {Top: 800, Bottom: 1600}})

	if got := tr.ScrollTarget(1); got != 800 {
		t.Errorf("ScrollTarget(1) = %v, want 800", got)
	}
	if got := tr.ScrollTarget(99); got != 800 {
		t.Errorf("out-of-range target = %v, want last container top", got)
	}
	if got := tr.ScrollTarget(-1); got != 0 {
		t.Errorf("negative target = %v, want 0", got)
	}
}

func TestViewerCinematic(t *testing.T) {
	v := NewViewer(Course{Title: "Test"})
	if v.CinematicVideoID() != "" {
		t.Error("new viewer should start with overlay closed")
	}
	v.EnterCinematic("dQw4w9WgXcQ")
	if v.CinematicVideoID() != "dQw4w9WgXcQ" {
		t.Errorf("overlay id = %q", v.CinematicVideoID())
	}
	v.EnterCinematic("")
	if v.CinematicVideoID() != "dQw4w9WgXcQ" {
		t.Error("empty id should not replace the open overlay")
	}
	v.ExitCinematic()
	if v.CinematicVideoID() != "" {
		t.Error("overlay should be closed after exit")
	}
}

func TestViewerNavLabels(t *testing.T) {
	v := NewViewer(Course{Blocks: []CourseBlock{
		{ID: "1", Type: BlockText, Content: "welcome"},
		{ID: "2", Type: BlockHeader, Content: "Act 1: Beans"},
	}})
	got := v.NavLabels()
	want := []string{"Start", "Intro", "1: Beans", "Fin."}
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
