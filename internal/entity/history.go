package entity

const (
	EntryMove   = "move"
	EntryRemove = "remove"
)

// HistoryTailLen - how many entries a snapshot exposes. The full history is
// kept internally so that rewinds stay correct no matter how deep the game is.
const HistoryTailLen = 20

// HistoryEntry - one reversible action. A "move" entry records the placement
// and the skill that accompanied it, if any; a "remove" entry records the
// removed stone's color and the color that removed it.
type HistoryEntry struct {
	Type    string `json:"type"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Color   string `json:"color"`
	By      string `json:"by,omitempty"`
	SkillID string `json:"skill_id,omitempty"`
}

// History - the ordered log of reversible actions for one room.
type History struct {
	entries []HistoryEntry
}

func (that *History) Push(entry HistoryEntry) {
	that.entries = append(that.entries, entry)
}

// Pop - removes and returns the most recent entry.
func (that *History) Pop() (HistoryEntry, bool) {
	if len(that.entries) == 0 {
		return HistoryEntry{}, false
	}

	last := that.entries[len(that.entries)-1]
	that.entries = that.entries[:len(that.entries)-1]

	return last, true
}

func (that *History) Len() int {
	return len(that.entries)
}

// Tail - returns a copy of the most recent n entries.
func (that *History) Tail(n int) []HistoryEntry {
	start := len(that.entries) - n
	if start < 0 {
		start = 0
	}

	tail := make([]HistoryEntry, len(that.entries)-start)
	copy(tail, that.entries[start:])

	return tail
}
