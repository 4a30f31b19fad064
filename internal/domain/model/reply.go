package model

// Delivery tells the messenger whether to post a new message or rewrite the
// one that carried the pressed keyboard.
type Delivery int

const (
	SendNew Delivery = iota
	EditInPlace
)

func (d Delivery) String() string {
	if d == EditInPlace {
		return "edit"
	}
	return "send"
}

// Reply is the outcome of dispatching one Event.
type Reply struct {
	Text     string
	Menu     *MenuDefinition // nil when no keyboard is attached
	Delivery Delivery
	// Toast is the transient confirmation shown to the user who pressed a
	// button. Empty means the callback is acknowledged silently.
	Toast string
	// Route names the dispatch table entry that produced the reply.
	Route string
}
