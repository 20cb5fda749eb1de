// Package dialogue implements the inspection dialogue as a pure state
// machine: (session, event) in, (mutated session, replies, action) out.
// It has no transport, store, or rendering dependencies, which keeps every
// transition testable in isolation.
package dialogue

import (
	"fmt"

	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/inspection"
)

// Action tells the orchestrating service what to do after a transition.
type Action int

const (
	// ActionNone means the dialogue simply continues.
	ActionNone Action = iota
	// ActionFinalize means the session is complete and should be rendered
	// and torn down.
	ActionFinalize
	// ActionCancel means the session should be discarded.
	ActionCancel
)

// Reply is one outbound prompt: text plus the option set offered for the
// next input, if the next input is a selection.
type Reply struct {
	Text    string
	Options []catalog.Option
}

// Result is the outcome of advancing the dialogue by one event.
type Result struct {
	Replies []Reply
	Action  Action
}

// FinalizeValue is the reserved option value the transport maps to a
// Finalize event. Catalog values never collide with it because it is not a
// roster ID, entity, or ship name.
const FinalizeValue = "finalize"

// Advance applies one event to the session. Invalid input (a select value
// outside the offered set, a malformed date, finalize on an empty list)
// leaves the session untouched and re-prompts in the same state. An event
// kind that is not valid for the current state is ignored outright: the
// offered input surface only produces matching kinds, so a mismatch is a
// stale button press.
func Advance(cat *catalog.Catalog, sess *inspection.Session, ev Event) Result {
	if _, ok := ev.(Cancel); ok {
		return Result{
			Replies: []Reply{{Text: "Inspection cancelled. Send /begin to start over."}},
			Action:  ActionCancel,
		}
	}

	switch sess.State {
	case inspection.StateSelectingInspector:
		return advanceInspector(cat, sess, ev)
	case inspection.StateSelectingEntity:
		return advanceEntity(cat, sess, ev)
	case inspection.StateSelectingShip:
		return advanceShip(cat, sess, ev)
	case inspection.StateEnteringDate:
		return advanceDate(sess, ev)
	case inspection.StateCollecting:
		return advanceCollecting(sess, ev)
	}

	return Result{}
}

// PromptFor returns the prompt to send when (re-)entering the given state.
func PromptFor(cat *catalog.Catalog, sess *inspection.Session) Reply {
	switch sess.State {
	case inspection.StateSelectingInspector:
		return Reply{Text: "Who is carrying out the inspection?", Options: cat.InspectorOptions()}
	case inspection.StateSelectingEntity:
		return Reply{Text: "Select the legal entity.", Options: cat.EntityOptions()}
	case inspection.StateSelectingShip:
		opts, _ := cat.ShipOptions(sess.Entity)
		return Reply{Text: fmt.Sprintf("Select the vessel operated by %s.", sess.Entity), Options: opts}
	case inspection.StateEnteringDate:
		return Reply{Text: "Enter the inspection date as DD.MM.YYYY, for example 01.03.2024."}
	case inspection.StateCollecting:
		return Reply{
			Text:    "Describe a violation or send a photo. Press Finish report when done, or /cancel to abort.",
			Options: []catalog.Option{{Value: FinalizeValue, Label: "Finish report"}},
		}
	}
	return Reply{}
}

func advanceInspector(cat *catalog.Catalog, sess *inspection.Session, ev Event) Result {
	sel, ok := ev.(Select)
	if !ok {
		return Result{}
	}
	if _, ok := cat.InspectorByID(sel.Value); !ok {
		return rePrompt(cat, sess, "That inspector is not on the roster.")
	}
	sess.Inspector = sel.Value
	sess.State = inspection.StateSelectingEntity
	return Result{Replies: []Reply{PromptFor(cat, sess)}}
}

func advanceEntity(cat *catalog.Catalog, sess *inspection.Session, ev Event) Result {
	sel, ok := ev.(Select)
	if !ok {
		return Result{}
	}
	if _, ok := cat.EntityByName(sel.Value); !ok {
		return rePrompt(cat, sess, "That entity is not in the catalog.")
	}
	sess.Entity = sel.Value
	sess.State = inspection.StateSelectingShip
	return Result{Replies: []Reply{PromptFor(cat, sess)}}
}

func advanceShip(cat *catalog.Catalog, sess *inspection.Session, ev Event) Result {
	sel, ok := ev.(Select)
	if !ok {
		return Result{}
	}
	if !cat.HasShip(sess.Entity, sel.Value) {
		return rePrompt(cat, sess, fmt.Sprintf("%s does not operate that vessel.", sess.Entity))
	}
	sess.Ship = sel.Value
	sess.State = inspection.StateEnteringDate
	return Result{Replies: []Reply{PromptFor(cat, sess)}}
}

func advanceDate(sess *inspection.Session, ev Event) Result {
	txt, ok := ev.(Text)
	if !ok {
		return Result{}
	}
	date, ok := inspection.ParseDate(txt.Content)
	if !ok {
		return Result{Replies: []Reply{{
			Text: fmt.Sprintf("%q is not a valid date. Use DD.MM.YYYY, for example 01.03.2024.", txt.Content),
		}}}
	}
	sess.Date = date
	sess.Violations = []inspection.Violation{}
	sess.State = inspection.StateCollecting
	return Result{Replies: []Reply{PromptFor(nil, sess)}}
}

func advanceCollecting(sess *inspection.Session, ev Event) Result {
	switch ev := ev.(type) {
	case Text:
		n := sess.AppendText(ev.Content)
		return Result{Replies: []Reply{collectAck(sess, fmt.Sprintf("Recorded violation %d.", n))}}
	case Photo:
		n := sess.AttachPhoto(ev.Ref, ev.Caption)
		return Result{Replies: []Reply{collectAck(sess, fmt.Sprintf("Photo attached to violation %d.", n))}}
	case Finalize:
		if len(sess.Violations) == 0 {
			return Result{Replies: []Reply{collectAck(sess, "Nothing to report yet: add at least one violation before finishing.")}}
		}
		return Result{Action: ActionFinalize}
	}
	return Result{}
}

// collectAck acknowledges progress and keeps the finish button reachable.
func collectAck(sess *inspection.Session, text string) Reply {
	r := PromptFor(nil, sess)
	r.Text = text
	return r
}

func rePrompt(cat *catalog.Catalog, sess *inspection.Session, reason string) Result {
	r := PromptFor(cat, sess)
	r.Text = reason + " " + r.Text
	return Result{Replies: []Reply{r}}
}
