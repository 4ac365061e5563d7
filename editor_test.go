package lumiere

import (
	"context"
	"testing"
)

// stubAssist returns fixed enrichment so tests can assert on it.
type stubAssist struct {
	StudioAssistant
	meta VideoMeta
}

func (s stubAssist) EnrichVideoMetadata(context.Context, string) VideoMeta { return s.meta }

func blockIDs(blocks []CourseBlock) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

func TestAppendBlockDefaults(t *testing.T) {
	e := NewEditor(nil)

	e.AppendBlock(BlockText)
	e.AppendBlock(BlockHeader)
	e.AppendBlock(BlockTabs)
	e.AppendBlock(BlockImage)

	blocks := e.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(blocks))
	}
	if blocks[0].Content != "" {
		t.Errorf("TEXT default content = %q, want empty", blocks[0].Content)
	}
	if blocks[1].Content != "New Act" || blocks[1].Metadata == nil || blocks[1].Metadata.Description == "" {
		t.Errorf("HEADER default = %+v", blocks[1])
	}
	tabs := DecodeTabs(blocks[2].Content)
	if len(tabs) != 2 || tabs[0].Label != "Overview" || tabs[1].Label != "Details" {
		t.Errorf("TABS default = %+v", tabs)
	}
	for i, b := range blocks {
		if b.ID == "" {
			t.Errorf("block %d has no id", i)
		}
	}
}

func TestUpdateBlockContentConvertsBareVideoURL(t *testing.T) {
	e := NewEditor(stubAssist{meta: VideoMeta{Title: "Brewing 101", Thumbnail: "thumb.jpg"}})
	id := e.AppendBlock(BlockText)

	e.UpdateBlockContent(id, "  https://www.youtube.com/watch?v=AAAAAAAAAAA  ")

	b := e.Blocks()[0]
	if b.Type != BlockVideo {
		t.Fatalf("block type = %s, want VIDEO", b.Type)
	}
	if b.ID != id {
		t.Errorf("conversion changed block id")
	}
	if b.Content != "https://www.youtube.com/watch?v=AAAAAAAAAAA" {
		t.Errorf("content = %q, want trimmed URL", b.Content)
	}

	e.Flush()
	b = e.Blocks()[0]
	if b.Metadata == nil || b.Metadata.Title != "Brewing 101" {
		t.Errorf("enriched metadata = %+v, want Brewing 101", b.Metadata)
	}
}

func TestUpdateBlockContentKeepsProseWithURL(t *testing.T) {
	e := NewEditor(nil)
	id := e.AppendBlock(BlockText)

	content := "check this out https://www.youtube.com/watch?v=AAAAAAAAAAA"
	e.UpdateBlockContent(id, content)

	b := e.Blocks()[0]
	if b.Type != BlockText {
		t.Errorf("block type = %s, want TEXT", b.Type)
	}
	if b.Content != content {
		t.Errorf("content = %q, want unchanged prose", b.Content)
	}
}

func TestUpdateBlockContentUnknownIDNoOps(t *testing.T) {
	e := NewEditor(nil)
	e.AppendBlock(BlockText)
	e.UpdateBlockContent("nope", "hello")
	if got := e.Blocks()[0].Content; got != "" {
		t.Errorf("content = %q, want untouched", got)
	}
}

func TestEnrichmentDroppedWhenBlockRemoved(t *testing.T) {
	e := NewEditor(stubAssist{meta: VideoMeta{Title: "late"}})
	id := e.AppendBlock(BlockText)
	e.UpdateBlockContent(id, "https://youtu.be/AAAAAAAAAAA")
	e.RemoveBlock(id)
	e.Flush()
	if got := len(e.Blocks()); got != 0 {
		t.Errorf("got %d blocks after removal, want 0", got)
	}
}

func TestUpdateBlockMetadataMergeAndClear(t *testing.T) {
	e := NewEditor(nil)
	id := e.AppendBlock(BlockText)

	e.UpdateBlockMetadata(id, "title", "A Title")
	e.UpdateBlockMetadata(id, "caption", "A Caption")
	b := e.Blocks()[0]
	if b.Metadata == nil || b.Metadata.Title != "A Title" || b.Metadata.Caption != "A Caption" {
		t.Fatalf("metadata = %+v", b.Metadata)
	}

	e.UpdateBlockMetadata(id, "title", "")
	b = e.Blocks()[0]
	if b.Metadata == nil || b.Metadata.Title != "" || b.Metadata.Caption != "A Caption" {
		t.Fatalf("after clearing title, metadata = %+v", b.Metadata)
	}

	e.UpdateBlockMetadata(id, "caption", "")
	if e.Blocks()[0].Metadata != nil {
		t.Error("metadata should be dropped once every field is cleared")
	}

	e.UpdateBlockMetadata(id, "flavor", "x")
	if e.Blocks()[0].Metadata != nil {
		t.Error("unknown field should no-op")
	}
}

func TestDragReorder(t *testing.T) {
	e := NewEditor(nil)
	var ids []string
	for i := 0; i < 4; i++ {
		ids = append(ids, e.AppendBlock(BlockText))
	}

	e.DragStart(0)
	e.DragEnter(2)
	e.DragEnd()

	got := blockIDs(e.Blocks())
	want := []string{ids[1], ids[2], ids[0], ids[3]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	seen := map[string]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate id %s after reorder", id)
		}
		seen[id] = true
	}
}

func TestDragEnterThroughMultipleHovers(t *testing.T) {
	e := NewEditor(nil)
	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, e.AppendBlock(BlockText))
	}

	e.DragStart(2)
	e.DragEnter(1)
	e.DragEnter(0)
	e.DragEnd()

	got := blockIDs(e.Blocks())
	want := []string{ids[2], ids[0], ids[1]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestDragGuards(t *testing.T) {
	e := NewEditor(nil)
	a := e.AppendBlock(BlockText)
	e.AppendBlock(BlockText)

	e.DragEnter(1)
	if got := blockIDs(e.Blocks())[0]; got != a {
		t.Error("DragEnter without DragStart should no-op")
	}

	e.DragStart(0)
	e.DragStart(1)
	if e.Dragging() != 0 {
		t.Errorf("second DragStart should not replace in-flight drag, got %d", e.Dragging())
	}
	e.DragEnd()
	if e.Dragging() != -1 {
		t.Error("DragEnd should clear the drag")
	}
}

func TestInsertSnippet(t *testing.T) {
	e := NewEditor(nil)
	id := e.AppendBlock(BlockText)

	e.InsertSnippet(id, Snippet("heading"))
	if got := e.Blocks()[0].Content; got != "## Heading" {
		t.Errorf("content = %q", got)
	}
	e.InsertSnippet(id, Snippet("divider"))
	if got := e.Blocks()[0].Content; got != "## Heading\n\n---" {
		t.Errorf("content = %q", got)
	}

	h := e.AppendBlock(BlockHeader)
	e.InsertSnippet(h, "**x**")
	if got := e.Blocks()[1].Content; got != "New Act" {
		t.Errorf("snippet into non-TEXT block should no-op, content = %q", got)
	}
}

func TestApplyOutline(t *testing.T) {
	e := NewEditor(nil)
	e.SetTitle("Keep Me")
	e.ApplyOutline(CourseOutline{
		Title:       "Replaced?",
		Description: "From outline",
		Acts: []ActOutline{
			{Title: "Act 1: Basics", Description: "start"},
			{Title: "Act 2: Depth", Description: "more"},
		},
	})

	snap := e.Snapshot()
	if snap.Title != "Keep Me" {
		t.Errorf("outline should not replace an existing title, got %q", snap.Title)
	}
	if snap.Description != "From outline" {
		t.Errorf("empty description should adopt the outline's, got %q", snap.Description)
	}
	if len(snap.Blocks) != 2 || snap.Blocks[0].Type != BlockHeader || snap.Blocks[1].Content != "Act 2: Depth" {
		t.Errorf("blocks = %+v", snap.Blocks)
	}
}

func TestEditorTabOperations(t *testing.T) {
	e := NewEditor(nil)
	id := e.AppendBlock(BlockTabs)

	e.AddTab(id)
	if tabs := DecodeTabs(e.Blocks()[0].Content); len(tabs) != 3 || tabs[2].Label != "New Tab" {
		t.Fatalf("tabs after add = %+v", tabs)
	}

	e.UpdateTab(id, 2, "label", "Extras")
	if tabs := DecodeTabs(e.Blocks()[0].Content); tabs[2].Label != "Extras" {
		t.Errorf("tabs after update = %+v", tabs)
	}

	if active := e.RemoveTab(id, 2, 2); active != 1 {
		t.Errorf("active after delete = %d, want 1", active)
	}
	if tabs := DecodeTabs(e.Blocks()[0].Content); len(tabs) != 2 {
		t.Errorf("tabs after delete = %+v", tabs)
	}
}

func TestPublish(t *testing.T) {
	e := NewEditor(nil)
	e.SetTitle("Kaffe")
	e.AppendBlock(BlockText)

	c := e.Publish("author-1")
	if c.ID == "" {
		t.Fatal("publish should mint an id")
	}
	if c.AuthorID != "author-1" || c.CreatedAt == 0 {
		t.Errorf("course = %+v", c)
	}

	c2 := e.Publish("author-1")
	if c2.ID != c.ID || c2.CreatedAt != c.CreatedAt {
		t.Error("republish should keep id and creation stamp")
	}
}

func TestNewEditorForRoundTrip(t *testing.T) {
	orig := Course{
		ID:        "c1",
		Title:     "Existing",
		Blocks:    []CourseBlock{{ID: "b1", Type: BlockText, Content: "hello"}},
		CreatedAt: 42,
	}
	e := NewEditorFor(orig, nil)
	e.UpdateBlockContent("b1", "edited")

	c := e.Publish("author-1")
	if c.ID != "c1" || c.CreatedAt != 42 {
		t.Errorf("revision should keep identity, got %+v", c)
	}
	if c.Blocks[0].Content != "edited" {
		t.Errorf("content = %q", c.Blocks[0].Content)
	}
	if orig.Blocks[0].Content != "hello" {
		t.Error("editing must not mutate the loaded course")
	}
}
