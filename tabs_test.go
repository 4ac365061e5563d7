package lumiere

import "testing"

func threeTabs() []TabItem {
	return []TabItem{
		{Label: "Overview", Content: "Brief overview...", Icon: "📋"},
		{Label: "Details", Content: "Deep dive...", Icon: "🔍"},
		{Label: "Extra", Content: "More..."},
	}
}

func TestDecodeTabsMalformedJSON(t *testing.T) {
	for _, input := range []string{"not json", "{", `{"label":"x"}`, ""} {
		if items := DecodeTabs(input); len(items) != 0 {
			t.Errorf("DecodeTabs(%q) = %v, want empty", input, items)
		}
	}
}

func TestEncodeDecodeTabsRoundTrip(t *testing.T) {
	items := []TabItem{
		{Label: "A", Content: "# md", Icon: "⚡", Variant: "light"},
		{Label: "B", Content: "plain", Image: "https://example.com/x.jpg"},
	}
	got := DecodeTabs(EncodeTabs(items))
	if len(got) != 2 {
		t.Fatalf("round trip lost items: %v", got)
	}
	if got[0] != items[0] || got[1] != items[1] {
		t.Errorf("round trip changed items: %v vs %v", got, items)
	}
}

func TestDeleteTabClampsActiveIndex(t *testing.T) {
	items, active := DeleteTab(threeTabs(), 2, 2)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if active != 1 {
		t.Errorf("active = %d, want 1", active)
	}
}

func TestDeleteTabBeforeActiveShiftsDown(t *testing.T) {
	items, active := DeleteTab(threeTabs(), 0, 2)
	if len(items) != 2 || items[0].Label != "Details" {
		t.Fatalf("wrong items after delete: %v", items)
	}
	if active != 1 {
		t.Errorf("active = %d, want 1", active)
	}
}

func TestDeleteTabAfterActiveKeepsIndex(t *testing.T) {
	_, active := DeleteTab(threeTabs(), 2, 0)
	if active != 0 {
		t.Errorf("active = %d, want 0", active)
	}
}

func TestDeleteTabOutOfRangeIsNoOp(t *testing.T) {
	items, active := DeleteTab(threeTabs(), 5, 1)
	if len(items) != 3 || active != 1 {
		t.Errorf("out-of-range delete changed state: %v, %d", items, active)
	}
}

func TestMoveTab(t *testing.T) {
	items := MoveTab(threeTabs(), 0, 2)
	want := []string{"Details", "Extra", "Overview"}
	for i, label := range want {
		if items[i].Label != label {
			t.Errorf("items[%d].Label = %q, want %q", i, items[i].Label, label)
		}
	}
	if len(items) != 3 {
		t.Errorf("move dropped or duplicated items: %v", items)
	}
}

func TestMoveTabOutOfRangeIsNoOp(t *testing.T) {
	items := MoveTab(threeTabs(), 0, 7)
	if items[0].Label != "Overview" {
		t.Errorf("out-of-range move changed order: %v", items)
	}
}

func TestSetTabField(t *testing.T) {
	items := SetTabField(threeTabs(), 1, "label", "Renamed")
	if items[1].Label != "Renamed" {
		t.Errorf("label not updated: %v", items[1])
	}
	items = SetTabField(items, 1, "variant", "light")
	if items[1].Variant != "light" {
		t.Errorf("variant not updated: %v", items[1])
	}
	if got := SetTabField(items, 9, "label", "x"); got[1].Label != "Renamed" {
		t.Errorf("out-of-range update should be a no-op")
	}
	if got := SetTabField(items, 1, "bogus", "x"); got[1] != items[1] {
		t.Errorf("unknown field update should be a no-op")
	}
}
