package dialogue

// Event is one decoded inbound interaction from the operator. The transport
// layer translates raw updates into these; the state machine never sees the
// wire format.
type Event interface {
	isEvent()
}

// Begin starts a new session, replacing any in-progress one for the chat.
type Begin struct{}

// Select carries the value of a pressed option button.
type Select struct {
	Value string
}

// Text is a free-text message: a date while entering the date, a violation
// description while collecting.
type Text struct {
	Content string
}

// Photo is an uploaded image reference with its optional caption.
type Photo struct {
	Ref     string
	Caption string
}

// Finalize is the explicit end-of-collection signal.
type Finalize struct{}

// Cancel aborts the session from any state.
type Cancel struct{}

func (Begin) isEvent()    {}
func (Select) isEvent()   {}
func (Text) isEvent()     {}
func (Photo) isEvent()    {}
func (Finalize) isEvent() {}
func (Cancel) isEvent()   {}
