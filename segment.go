package lumiere

// CourseSection is a derived, presentational grouping of blocks: everything
// between one HEADER block and the next, plus a leading "intro" section for
// blocks that appear before the first header. Sections are recomputed from
// the block sequence on every render pass and never persisted.
type CourseSection struct {
	ID         string
	Header     *CourseBlock
	Blocks     []CourseBlock
	StyleIndex int
}

// SectionStyleCount is the size of the cyclic visual theme palette a
// section's StyleIndex is reduced into (StyleIndex mod SectionStyleCount).
const SectionStyleCount = 5

// Segment groups blocks into sections keyed on HEADER blocks. A header ends
// the current section and opens a new one; the leading intro section is
// dropped only when it is still empty, so two adjacent headers produce two
// distinct sections. The result always has at least one entry, and
// StyleIndex is assigned by output position so repeated runs over the same
// input agree.
func Segment(blocks []CourseBlock) []CourseSection {
	var result []CourseSection
	current := CourseSection{ID: "intro", StyleIndex: 0}

	for _, block := range blocks {
		if block.Type == BlockHeader {
			if len(current.Blocks) > 0 || current.Header != nil {
				result = append(result, current)
			}
			header := block
			current = CourseSection{
				ID:         block.ID,
				Header:     &header,
				StyleIndex: len(result) + 1,
			}
		} else {
			current.Blocks = append(current.Blocks, block)
		}
	}
	result = append(result, current)
	return result
}
