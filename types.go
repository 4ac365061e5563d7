package lumiere

// BlockType tags a CourseBlock variant. The string values are part of the
// stored JSON and must not change.
type BlockType string

const (
	BlockVideo  BlockType = "VIDEO"
	BlockText   BlockType = "TEXT"
	BlockImage  BlockType = "IMAGE"
	BlockQuiz   BlockType = "QUIZ"
	BlockHeader BlockType = "HEADER"
	BlockTabs   BlockType = "TABS"
)

// BlockMeta is the wire shape of a block's optional metadata. Which fields
// are meaningful depends on the block type; use the typed accessors below
// instead of reading fields directly.
type BlockMeta struct {
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Caption         string `json:"caption,omitempty"`
	AIGenerated     bool   `json:"aiGenerated,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// CourseBlock is one unit of course content. Content is interpreted per
// Type: markdown for TEXT, a URL for IMAGE/VIDEO, JSON-encoded tabs for
// TABS, and the section title for HEADER.
type CourseBlock struct {
	ID       string     `json:"id"`
	Type     BlockType  `json:"type"`
	Content  string     `json:"content"`
	Metadata *BlockMeta `json:"metadata,omitempty"`
}

// HeaderMeta is the metadata a HEADER block actually uses.
type HeaderMeta struct {
	Description     string
	BackgroundImage string
}

// VideoMeta is the metadata a VIDEO block actually uses.
type VideoMeta struct {
	Title       string
	Description string
	Thumbnail   string
}

// ImageMeta is the metadata an IMAGE block actually uses.
type ImageMeta struct {
	Title       string
	Description string
	Caption     string
}

// HeaderMeta returns the typed view of a HEADER block's metadata.
func (b CourseBlock) HeaderMeta() HeaderMeta {
	if b.Metadata == nil {
		return HeaderMeta{}
	}
	return HeaderMeta{
		Description:     b.Metadata.Description,
		BackgroundImage: b.Metadata.BackgroundImage,
	}
}

// VideoMeta returns the typed view of a VIDEO block's metadata.
func (b CourseBlock) VideoMeta() VideoMeta {
	if b.Metadata == nil {
		return VideoMeta{}
	}
	return VideoMeta{
		Title:       b.Metadata.Title,
		Description: b.Metadata.Description,
		Thumbnail:   b.Metadata.Thumbnail,
	}
}

// ImageMeta returns the typed view of an IMAGE block's metadata.
func (b CourseBlock) ImageMeta() ImageMeta {
	if b.Metadata == nil {
		return ImageMeta{}
	}
	return ImageMeta{
		Title:       b.Metadata.Title,
		Description: b.Metadata.Description,
		Caption:     b.Metadata.Caption,
	}
}

// Course is the aggregate root: an ordered block sequence plus cover fields.
// It is persisted as a whole document and treated as immutable by the viewer.
type Course struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category,omitempty"`
	CoverImage  string        `json:"coverImage"`
	Blocks      []CourseBlock `json:"blocks"`
	AuthorID    string        `json:"authorId,omitempty"`
	CreatedAt   int64         `json:"createdAt,omitempty"`
}

// FindBlock returns the index of the block with the given id, or -1.
func (c Course) FindBlock(id string) int {
	for i, b := range c.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Identity is an authenticated creator. A nil *Identity means anonymous;
// anonymous and not-allow-listed are treated identically as read-only.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
