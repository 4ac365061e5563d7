package lumiere

import "encoding/json"

// TabItem is one labeled panel inside a TABS block. Order is significant.
// Variant selects the panel's visual treatment: "" (default) or "light".
type TabItem struct {
	Label   string `json:"label"`
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
	Image   string `json:"image,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// DecodeTabs parses a TABS block's content. Malformed JSON degrades to an
// empty list so the block renders as nothing rather than failing. This and
// EncodeTabs are the only places the JSON encoding is touched.
func DecodeTabs(content string) []TabItem {
	if content == "" {
		return nil
	}
	var items []TabItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil
	}
	return items
}

// EncodeTabs serializes items back into a TABS block's content field.
// The whole list is re-serialized on every mutation.
func EncodeTabs(items []TabItem) string {
	if items == nil {
		items = []TabItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// AppendTab adds a default-valued item to the end of the list.
func AppendTab(items []TabItem) []TabItem {
	return append(items, TabItem{Label: "New Tab", Content: "", Icon: "✨"})
}

// DeleteTab removes the item at idx and returns the adjusted active-edit
// index: deleting at or before the active index shifts it down, never below
// zero and never past the shrunken list. Out-of-range idx is a no-op.
func DeleteTab(items []TabItem, idx, active int) ([]TabItem, int) {
	if idx < 0 || idx >= len(items) {
		return items, active
	}
	out := make([]TabItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	if idx <= active && active > 0 {
		active--
	}
	if active >= len(out) && active > 0 {
		active = len(out) - 1
	}
	return out, active
}

// SetTabField updates one named field of the item at idx. Unknown fields and
// out-of-range indexes are no-ops.
func SetTabField(items []TabItem, idx int, field, value string) []TabItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	out := make([]TabItem, len(items))
	copy(out, items)
	switch field {
	case "label":
		out[idx].Label = value
	case "content":
		out[idx].Content = value
	case "icon":
		out[idx].Icon = value
	case "image":
		out[idx].Image = value
	case "variant":
		out[idx].Variant = value
	default:
		return items
	}
	return out
}

// MoveTab removes the item at from and re-inserts it at to. Out-of-range
// indexes are no-ops; the result never drops or duplicates an item.
func MoveTab(items []TabItem, from, to int) []TabItem {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return items
	}
	out := make([]TabItem, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	moved := items[from]
	out = append(out[:to], append([]TabItem{moved}, out[to:]...)...)
	return out
}
