package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/dialogue"
	"github.com/marinops/fleetcheck/internal/core/inspection"
	"github.com/marinops/fleetcheck/internal/core/report"
	"github.com/marinops/fleetcheck/internal/data/stores"
)

// Output is one transport-level message to deliver back to the chat.
// Exactly one of Document, PhotoRef, or Text(+Options) is meaningful.
type Output struct {
	Text     string
	Options  []catalog.Option
	PhotoRef string
	Document *Document
}

// Document is a rendered report artifact ready for upload.
type Document struct {
	Name string
	Data []byte
}

// DocumentRenderer produces the PDF artifact for a finalized session.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, cat *catalog.Catalog, sess *inspection.Session) ([]byte, error)
}

// Service turns decoded events into session mutations and outbound
// messages. It is transport-agnostic; the Telegram adapter calls Handle
// from each chat's dispatch worker.
type Service struct {
	cat      *catalog.Catalog
	sessions *stores.SessionStore
	journal  *stores.JournalStore
	renderer DocumentRenderer
	log      zerolog.Logger
	now      func() time.Time
}

// NewService wires the orchestration service. journal may be nil, in which
// case finalized inspections are not recorded.
func NewService(
	cat *catalog.Catalog,
	sessions *stores.SessionStore,
	journal *stores.JournalStore,
	renderer DocumentRenderer,
	log zerolog.Logger,
) *Service {
	return &Service{
		cat:      cat,
		sessions: sessions,
		journal:  journal,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
}

// Greeting is the response to /start, outside any session.
func (s *Service) Greeting() []Output {
	return []Output{{
		Text: "Fleet inspection assistant.\n\n" +
			"I will walk you through an inspection: inspector, legal entity, vessel, " +
			"date, then the list of violations, and hand back a report.\n\n" +
			"Send /begin to start, /cancel to abort at any point.",
	}}
}

// Handle applies one inbound event for the chat and returns the messages to
// deliver. It must be called serially per chat.
func (s *Service) Handle(ctx context.Context, chatID int64, ev dialogue.Event) []Output {
	if _, ok := ev.(dialogue.Begin); ok {
		sess := s.sessions.Create(chatID, s.now())
		s.log.Info().Int64("chat_id", chatID).Msg("session started")
		return []Output{fromReply(dialogue.PromptFor(s.cat, sess))}
	}

	sess, ok := s.sessions.Get(chatID)
	if !ok {
		if _, isCancel := ev.(dialogue.Cancel); isCancel {
			return []Output{{Text: "Nothing to cancel. Send /begin to start an inspection."}}
		}
		return []Output{{Text: "No inspection in progress. Send /begin to start one."}}
	}

	res := dialogue.Advance(s.cat, sess, ev)

	outs := make([]Output, 0, len(res.Replies))
	for _, r := range res.Replies {
		outs = append(outs, fromReply(r))
	}

	switch res.Action {
	case dialogue.ActionCancel:
		s.sessions.Destroy(chatID)
		s.log.Info().Int64("chat_id", chatID).Msg("session cancelled")
	case dialogue.ActionFinalize:
		outs = append(outs, s.finalize(ctx, sess)...)
	}

	return outs
}

// finalize renders the finished session. The summary and photo messages are
// emitted unconditionally; a document rendering failure keeps the session
// alive so the operator can retry, while success records the journal entry
// and tears the session down.
func (s *Service) finalize(ctx context.Context, sess *inspection.Session) []Output {
	sum := report.BuildSummary(s.cat, sess)
	outs := []Output{{Text: sum.Text}}
	for _, ref := range sum.Photos {
		outs = append(outs, Output{PhotoRef: ref})
	}

	data, err := s.renderer.RenderDocument(ctx, s.cat, sess)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", sess.ChatID).Msg("document rendering failed")
		outs = append(outs, Output{
			Text:    "The report document could not be generated. Your violations are intact: press Finish report to retry, or /cancel to abort.",
			Options: []catalog.Option{{Value: dialogue.FinalizeValue, Label: "Finish report"}},
		})
		return outs
	}

	name := report.ArtifactName(sess.Date)
	outs = append(outs, Output{Document: &Document{Name: name, Data: data}})

	if s.journal != nil {
		entry := stores.JournalEntry{
			Inspector:   s.cat.InspectorName(sess.Inspector),
			Entity:      sess.Entity,
			Ship:        sess.Ship,
			InspectedOn: sess.Date,
			Violations:  len(sess.Violations),
			Artifact:    name,
			CreatedAt:   s.now(),
		}
		// The operator already has the report; a journal failure is ours
		// to log, not theirs to retry.
		if err := s.journal.Append(ctx, entry); err != nil {
			s.log.Error().Err(err).Int64("chat_id", sess.ChatID).Msg("journal append failed")
		}
	}

	s.sessions.Destroy(sess.ChatID)
	s.log.Info().
		Int64("chat_id", sess.ChatID).
		Str("ship", sess.Ship).
		Int("violations", len(sess.Violations)).
		Msg("inspection finalized")

	return append(outs, Output{Text: "Inspection recorded. Send /begin to start another."})
}

func fromReply(r dialogue.Reply) Output {
	return Output{Text: r.Text, Options: r.Options}
}
