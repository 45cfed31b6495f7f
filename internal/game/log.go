package game

// LogEntry is one public action in the current hand's append-only audit
// trail. The coaching overlay compares Action against Advice.
type LogEntry struct {
	Message  string
	Position Position
	Action   Action
	Amount   int
	Advice   Action  // the action judged best at that moment
	Strength float64 // hand strength the advice was based on
}

func (h *HandState) appendLog(e LogEntry) {
	h.Log = append(h.Log, e)
}
