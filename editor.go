package lumiere

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Editor is the authoring state machine behind the studio. All mutation goes
// through its methods under one mutex, so concurrent studio requests against
// the same draft stay consistent. Block lookups are by id and invalid ids
// no-op, which lets stale requests from an out-of-date page land harmlessly.
type Editor struct {
	mu sync.Mutex

	courseID    string
	title       string
	description string
	category    string
	coverImage  string
	createdAt   int64
	blocks      []CourseBlock

	// dragged is the index currently being reordered, nil when no drag is
	// in flight.
	dragged *int

	assist  Assistant
	pending sync.WaitGroup
}

// NewEditor returns an empty draft. A nil assistant falls back to the
// built-in StudioAssistant.
func NewEditor(assist Assistant) *Editor {
	if assist == nil {
		assist = StudioAssistant{}
	}
	return &Editor{assist: assist}
}

// NewEditorFor loads an existing course into a fresh editor for revision.
func NewEditorFor(c Course, assist Assistant) *Editor {
	e := NewEditor(assist)
	e.courseID = c.ID
	e.title = c.Title
	e.description = c.Description
	e.category = c.Category
	e.coverImage = c.CoverImage
	e.createdAt = c.CreatedAt
	e.blocks = append([]CourseBlock(nil), c.Blocks...)
	return e
}

func (e *Editor) SetTitle(s string) {
	e.mu.Lock()
	e.title = s
	e.mu.Unlock()
}

func (e *Editor) SetDescription(s string) {
	e.mu.Lock()
	e.description = s
	e.mu.Unlock()
}

func (e *Editor) SetCategory(s string) {
	e.mu.Lock()
	e.category = s
	e.mu.Unlock()
}

func (e *Editor) SetCoverImage(ref string) {
	e.mu.Lock()
	e.coverImage = ref
	e.mu.Unlock()
}

// Blocks returns a copy of the current block sequence.
func (e *Editor) Blocks() []CourseBlock {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]CourseBlock(nil), e.blocks...)
}

// AppendBlock adds a new block of the given type with its authoring
// defaults and returns its id.
func (e *Editor) AppendBlock(t BlockType) string {
	b := CourseBlock{ID: uuid.NewString(), Type: t}
	switch t {
	case BlockHeader:
		b.Content = "New Act"
		b.Metadata = &BlockMeta{Description: "Description of this act"}
	case BlockTabs:
		b.Content = EncodeTabs([]TabItem{
			{Label: "Overview", Content: "Introduce this topic here."},
			{Label: "Details", Content: "Go deeper here."},
		})
	case BlockImage:
		b.Metadata = &BlockMeta{Caption: ""}
	}
	e.mu.Lock()
	e.blocks = append(e.blocks, b)
	e.mu.Unlock()
	return b.ID
}

// AppendVideoBlock adds a VIDEO block for a pasted URL and kicks off
// asynchronous metadata enrichment.
func (e *Editor) AppendVideoBlock(url string) string {
	url = strings.TrimSpace(url)
	b := CourseBlock{
		ID:       uuid.NewString(),
		Type:     BlockVideo,
		Content:  url,
		Metadata: &BlockMeta{Title: "Loading video details..."},
	}
	e.mu.Lock()
	e.blocks = append(e.blocks, b)
	e.mu.Unlock()
	e.enrichVideo(b.ID, url)
	return b.ID
}

// UpdateBlockContent sets a block's content. When a TEXT block's new content
// is a bare video URL, the block converts to VIDEO in place, keeping its id
// and position, with metadata enriched asynchronously. Pre-existing VIDEO
// blocks never convert back. Unknown ids no-op.
func (e *Editor) UpdateBlockContent(id, content string) {
	var enrichURL string

	e.mu.Lock()
	if i := e.find(id); i >= 0 {
		b := &e.blocks[i]
		if b.Type == BlockText && IsBareVideoURL(content) {
			url := strings.TrimSpace(content)
			b.Type = BlockVideo
			b.Content = url
			b.Metadata = &BlockMeta{Title: "Loading video details..."}
			enrichURL = url
		} else {
			b.Content = content
		}
	}
	e.mu.Unlock()

	if enrichURL != "" {
		e.enrichVideo(id, enrichURL)
	}
}

// enrichVideo resolves video metadata off the request path and applies it
// by id. If the block was removed or changed in the meantime, the result is
// dropped.
func (e *Editor) enrichVideo(id, url string) {
	if id == "" {
		return
	}
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		meta := e.assist.EnrichVideoMetadata(ctx, url)

		e.mu.Lock()
		defer e.mu.Unlock()
		i := e.find(id)
		if i < 0 {
			return
		}
		b := &e.blocks[i]
		if b.Type != BlockVideo || b.Content != url {
			return
		}
		b.Metadata = &BlockMeta{
			Title:       meta.Title,
			Description: meta.Description,
			Thumbnail:   meta.Thumbnail,
		}
	}()
}

// Flush blocks until all in-flight enrichment has settled.
func (e *Editor) Flush() { e.pending.Wait() }

// UpdateBlockMetadata merges one metadata field into a block. An empty
// value clears the field, and a metadata object with no remaining fields is
// dropped entirely. Unknown ids and unknown fields no-op.
func (e *Editor) UpdateBlockMetadata(id, field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.find(id)
	if i < 0 {
		return
	}
	b := &e.blocks[i]
	meta := BlockMeta{}
	if b.Metadata != nil {
		meta = *b.Metadata
	}
	switch field {
	case "title":
		meta.Title = value
	case "description":
		meta.Description = value
	case "caption":
		meta.Caption = value
	case "thumbnail":
		meta.Thumbnail = value
	case "backgroundImage":
		meta.BackgroundImage = value
	default:
		return
	}
	if meta == (BlockMeta{}) {
		b.Metadata = nil
	} else {
		b.Metadata = &meta
	}
}

// RemoveBlock deletes a block by id. Unknown ids no-op.
func (e *Editor) RemoveBlock(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.find(id)
	if i < 0 {
		return
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
}

// DragStart begins a reorder from the given index. A drag already in flight
// is kept; starting again with an out-of-range index is ignored.
func (e *Editor) DragStart(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dragged != nil || index < 0 || index >= len(e.blocks) {
		return
	}
	e.dragged = &index
}

// DragEnter moves the dragged block to hover over index, splicing the
// sequence so the dragged block now lives at that position. The dragged
// index follows the block. No drag in flight or an out-of-range hover
// no-ops.
func (e *Editor) DragEnter(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dragged == nil || index < 0 || index >= len(e.blocks) || index == *e.dragged {
		return
	}
	from := *e.dragged
	moved := e.blocks[from]
	rest := append(e.blocks[:from:from], e.blocks[from+1:]...)
	e.blocks = append(rest[:index:index], append([]CourseBlock{moved}, rest[index:]...)...)
	e.dragged = &index
}

// DragEnd finishes the reorder.
func (e *Editor) DragEnd() {
	e.mu.Lock()
	e.dragged = nil
	e.mu.Unlock()
}

// Dragging returns the in-flight drag index, or -1 when idle.
func (e *Editor) Dragging() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dragged == nil {
		return -1
	}
	return *e.dragged
}

// InsertSnippet appends a markdown snippet to a TEXT block's content,
// separated by a blank line when the block already has text.
func (e *Editor) InsertSnippet(id, snippet string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.find(id)
	if i < 0 || e.blocks[i].Type != BlockText {
		return
	}
	b := &e.blocks[i]
	if b.Content == "" {
		b.Content = snippet
	} else {
		b.Content += "\n\n" + snippet
	}
}

// Snippet returns the markdown toolbar snippet for a named control, or ""
// for an unknown name.
func Snippet(name string) string {
	switch name {
	case "bold":
		return "**bold text**"
	case "italic":
		return "*italic text*"
	case "strike":
		return "~~struck text~~"
	case "heading":
		return "## Heading"
	case "list":
		return "- List item"
	case "task":
		return "- [ ] Task item"
	case "quote":
		return "> Quote"
	case "code":
		return "```\ncode\n```"
	case "table":
		return "| Column | Column |\n|---|---|\n| Cell | Cell |"
	case "divider":
		return "---"
	case "link":
		return "[link text](https://)"
	default:
		return ""
	}
}

// ApplyOutline appends one HEADER block per suggested act and fills in the
// draft title and description when they are still empty.
func (e *Editor) ApplyOutline(outline CourseOutline) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.title == "" {
		e.title = outline.Title
	}
	if e.description == "" {
		e.description = outline.Description
	}
	for _, act := range outline.Acts {
		e.blocks = append(e.blocks, CourseBlock{
			ID:       uuid.NewString(),
			Type:     BlockHeader,
			Content:  act.Title,
			Metadata: &BlockMeta{Description: act.Description},
		})
	}
}

// AddTab appends a tab to a TABS block.
func (e *Editor) AddTab(id string) {
	e.withTabs(id, func(items []TabItem) []TabItem {
		return AppendTab(items)
	})
}

// RemoveTab deletes a tab and returns the adjusted active index for the
// caller's tab strip.
func (e *Editor) RemoveTab(id string, index, active int) int {
	e.withTabs(id, func(items []TabItem) []TabItem {
		items, active = DeleteTab(items, index, active)
		return items
	})
	return active
}

// UpdateTab sets one field on one tab of a TABS block.
func (e *Editor) UpdateTab(id string, index int, field, value string) {
	e.withTabs(id, func(items []TabItem) []TabItem {
		return SetTabField(items, index, field, value)
	})
}

// ReorderTab moves a tab within a TABS block.
func (e *Editor) ReorderTab(id string, from, to int) {
	e.withTabs(id, func(items []TabItem) []TabItem {
		return MoveTab(items, from, to)
	})
}

func (e *Editor) withTabs(id string, fn func([]TabItem) []TabItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.find(id)
	if i < 0 || e.blocks[i].Type != BlockTabs {
		return
	}
	e.blocks[i].Content = EncodeTabs(fn(DecodeTabs(e.blocks[i].Content)))
}

// Snapshot returns the draft as a Course without publishing it. Unsaved
// drafts have an empty id.
func (e *Editor) Snapshot() Course {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Course{
		ID:          e.courseID,
		Title:       e.title,
		Description: e.description,
		Category:    e.category,
		CoverImage:  e.coverImage,
		Blocks:      append([]CourseBlock(nil), e.blocks...),
		CreatedAt:   e.createdAt,
	}
}

// Publish finalizes the draft into a Course ready to persist, minting an id
// and creation stamp for first-time publishes.
func (e *Editor) Publish(authorID string) Course {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.courseID == "" {
		e.courseID = uuid.NewString()
	}
	if e.createdAt == 0 {
		e.createdAt = time.Now().Unix()
	}
	return Course{
		ID:          e.courseID,
		Title:       e.title,
		Description: e.description,
		Category:    e.category,
		CoverImage:  e.coverImage,
		Blocks:      append([]CourseBlock(nil), e.blocks...),
		AuthorID:    authorID,
		CreatedAt:   e.createdAt,
	}
}

func (e *Editor) find(id string) int {
	for i := range e.blocks {
		if e.blocks[i].ID == id {
			return i
		}
	}
	return -1
}
