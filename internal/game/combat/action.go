package combat

// Slot identifies which per-round permission an intent spends.
// The zero value (SlotFree) spends neither slot.
type Slot int

const (
	SlotFree        Slot = iota // rides on another intent; spends nothing
	SlotAction                  // spends the action slot
	SlotBonusAction             // spends the bonus-action slot
)

// String returns the human-readable name of the Slot.
// Postcondition: returns "free", "action", "bonus_action", or "unknown".
func (s Slot) String() string {
	switch s {
	case SlotFree:
		return "free"
	case SlotAction:
		return "action"
	case SlotBonusAction:
		return "bonus_action"
	default:
		return "unknown"
	}
}
