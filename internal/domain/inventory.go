package domain

import (
	"fmt"
	"strings"
)

// VisitIslandLabel is the label of the menu entry that teleports to a
// player's island.
const VisitIslandLabel = "Visit player island"

// InventorySlot is one position of an open container. A nil Label means the
// slot is empty.
type InventorySlot struct {
	Label *StyledText
}

func EmptySlot() InventorySlot {
	return InventorySlot{}
}

func LabeledSlot(label StyledText) InventorySlot {
	return InventorySlot{Label: &label}
}

func (s InventorySlot) Empty() bool {
	return s.Label == nil
}

func (s InventorySlot) String() string {
	if s.Empty() {
		return "<empty>"
	}
	return fmt.Sprintf("%q", Render(*s.Label))
}

// FindByLabelSubstring returns the index of the first non-empty slot whose
// rendered label contains needle. Matching is case-sensitive.
func FindByLabelSubstring(slots []InventorySlot, needle string) (int, bool) {
	for i, slot := range slots {
		if slot.Empty() {
			continue
		}
		if strings.Contains(string(Render(*slot.Label)), needle) {
			return i, true
		}
	}
	return 0, false
}

// DescribeSlots renders every slot for diagnostics.
func DescribeSlots(slots []InventorySlot) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = fmt.Sprintf("%d:%s", i, slot)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
