package views

import (
	"context"
	"strings"
	"testing"

	"github.com/kristoffermer/Lumiere"
)

func TestStudioPageWiresBlockDrag(t *testing.T) {
	draft := lumiere.Course{
		Title: "Draft",
		Blocks: []lumiere.CourseBlock{
			{ID: "b1", Type: lumiere.BlockHeader, Content: "Act 1"},
			{ID: "b2", Type: lumiere.BlockText, Content: "prose"},
		},
	}

	var buf strings.Builder
	if err := StudioPage(draft, "tok-123").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`draggable="true"`,
		`data-block-index="0"`,
		`data-block-index="1"`,
		`<meta name="csrf-token" content="tok-123"/>`,
		`<script src="/public/studio.js" defer></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("studio page is missing %q", want)
		}
	}
}
