package lumiere

import "testing"

func textBlock(id string) CourseBlock {
	return CourseBlock{ID: id, Type: BlockText, Content: "body"}
}

func headerBlock(id, title string) CourseBlock {
	return CourseBlock{ID: id, Type: BlockHeader, Content: title}
}

func TestSegmentEmptyInput(t *testing.T) {
	sections := Segment(nil)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].ID != "intro" || sections[0].Header != nil || len(sections[0].Blocks) != 0 {
		t.Errorf("empty input should yield the bare intro section, got %+v", sections[0])
	}
}

func TestSegmentIntroThenHeaders(t *testing.T) {
	blocks := []CourseBlock{
		textBlock("t1"),
		headerBlock("h1", "A"),
		textBlock("t2"),
		headerBlock("h2", "B"),
	}
	sections := Segment(blocks)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[0].ID != "intro" || len(sections[0].Blocks) != 1 || sections[0].Blocks[0].ID != "t1" {
		t.Errorf("intro section wrong: %+v", sections[0])
	}
	if sections[1].Header == nil || sections[1].Header.Content != "A" || len(sections[1].Blocks) != 1 {
		t.Errorf("section A wrong: %+v", sections[1])
	}
	if sections[2].Header == nil || sections[2].Header.Content != "B" || len(sections[2].Blocks) != 0 {
		t.Errorf("section B should be empty-bodied: %+v", sections[2])
	}
}

func TestSegmentSuppressesEmptyIntroOnly(t *testing.T) {
	sections := Segment([]CourseBlock{
		headerBlock("h1", "A"),
		headerBlock("h2", "B"),
	})
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2 (empty intro suppressed, adjacent headers kept)", len(sections))
	}
	if sections[0].ID != "h1" || sections[1].ID != "h2" {
		t.Errorf("section ids = %q, %q", sections[0].ID, sections[1].ID)
	}
}

func TestSegmentTrailingHeaderProducesSection(t *testing.T) {
	sections := Segment([]CourseBlock{
		textBlock("t1"),
		headerBlock("h1", "A"),
	})
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[1].Header == nil || len(sections[1].Blocks) != 0 {
		t.Errorf("trailing header should open a final empty section: %+v", sections[1])
	}
}

func TestSegmentDeterministic(t *testing.T) {
	blocks := []CourseBlock{
		textBlock("t1"),
		headerBlock("h1", "A"),
		textBlock("t2"),
		textBlock("t3"),
		headerBlock("h2", "B"),
		textBlock("t4"),
	}
	a := Segment(blocks)
	b := Segment(blocks)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].StyleIndex != b[i].StyleIndex || len(a[i].Blocks) != len(b[i].Blocks) {
			t.Errorf("section %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
		for j := range a[i].Blocks {
			if a[i].Blocks[j].ID != b[i].Blocks[j].ID {
				t.Errorf("section %d block %d differs: %q vs %q", i, j, a[i].Blocks[j].ID, b[i].Blocks[j].ID)
			}
		}
	}
}

func TestSegmentStyleIndexFollowsOutputPosition(t *testing.T) {
	sections := Segment([]CourseBlock{
		textBlock("t1"),
		headerBlock("h1", "A"),
		headerBlock("h2", "B"),
		headerBlock("h3", "C"),
	})
	want := []int{0, 1, 2, 3}
	if len(sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(sections), len(want))
	}
	for i, s := range sections {
		if s.StyleIndex != want[i] {
			t.Errorf("section %d StyleIndex = %d, want %d", i, s.StyleIndex, want[i])
		}
	}
}
