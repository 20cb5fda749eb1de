package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/marinops/fleetcheck/internal/core/assets"
	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/dialogue"
)

// Bot is the Telegram long-polling transport. It decodes raw updates into
// dialogue events, hands them to the per-chat dispatcher, and delivers the
// resulting outputs.
type Bot struct {
	api         *tgbotapi.BotAPI
	svc         *Service
	dispatch    *Dispatcher
	log         zerolog.Logger
	pollTimeout int
}

// New authenticates against the Telegram API. It does not start polling.
func New(token string, pollTimeout int, svc *Service, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authenticate bot: %w", err)
	}

	b := &Bot{
		api:         api,
		svc:         svc,
		log:         log,
		pollTimeout: pollTimeout,
	}
	b.dispatch = NewDispatcher(svc.Handle, b.deliver, log)
	return b, nil
}

// Fetcher returns a photo fetcher backed by this bot's API credentials.
// Install it on the asset manager before running.
func (b *Bot) Fetcher() assets.Fetcher {
	return &fileFetcher{api: b.api}
}

// Run polls for updates until the context is cancelled, then drains the
// per-chat queues and returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Str("username", b.api.Self.UserName).Msg("telegram polling started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.dispatch.Close()
			b.log.Info().Msg("telegram polling stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				b.dispatch.Close()
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	// Ack button presses immediately so the client stops its spinner,
	// whatever the event turns out to be.
	if upd.CallbackQuery != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(upd.CallbackQuery.ID, "")); err != nil {
			b.log.Debug().Err(err).Msg("callback ack failed")
		}
	}

	// /start is a greeting outside any session, not a dialogue event.
	if upd.Message != nil && upd.Message.IsCommand() && upd.Message.Command() == "start" {
		b.deliver(upd.Message.Chat.ID, b.svc.Greeting())
		return
	}

	chatID, ev, ok := decodeUpdate(upd)
	if !ok {
		return
	}
	b.dispatch.Submit(ctx, chatID, ev)
}

// decodeUpdate translates a raw Telegram update into a dialogue event.
// Updates that carry nothing the dialogue understands are discarded here.
func decodeUpdate(upd tgbotapi.Update) (int64, dialogue.Event, bool) {
	switch {
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		chatID := upd.CallbackQuery.Message.Chat.ID
		if upd.CallbackQuery.Data == dialogue.FinalizeValue {
			return chatID, dialogue.Finalize{}, true
		}
		return chatID, dialogue.Select{Value: upd.CallbackQuery.Data}, true

	case upd.Message != nil:
		msg := upd.Message
		chatID := msg.Chat.ID

		if msg.IsCommand() {
			switch msg.Command() {
			case "begin":
				return chatID, dialogue.Begin{}, true
			case "cancel":
				return chatID, dialogue.Cancel{}, true
			case "done":
				return chatID, dialogue.Finalize{}, true
			}
			return 0, nil, false
		}

		if len(msg.Photo) > 0 {
			// Sizes are ordered smallest to largest; embed the largest.
			largest := msg.Photo[len(msg.Photo)-1]
			return chatID, dialogue.Photo{Ref: largest.FileID, Caption: msg.Caption}, true
		}

		if msg.Text != "" {
			return chatID, dialogue.Text{Content: msg.Text}, true
		}
	}

	return 0, nil, false
}

// deliver sends outputs in order. A failed send is logged and the rest are
// still attempted.
func (b *Bot) deliver(chatID int64, outs []Output) {
	for _, out := range outs {
		var msg tgbotapi.Chattable
		switch {
		case out.Document != nil:
			msg = tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
				Name:  out.Document.Name,
				Bytes: out.Document.Data,
			})
		case out.PhotoRef != "":
			msg = tgbotapi.NewPhoto(chatID, tgbotapi.FileID(out.PhotoRef))
		default:
			m := tgbotapi.NewMessage(chatID, out.Text)
			if len(out.Options) > 0 {
				m.ReplyMarkup = optionKeyboard(out.Options)
			}
			msg = m
		}

		if _, err := b.api.Send(msg); err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
		}
	}
}

// optionKeyboard renders the offered option set as one button per row,
// labels shown, values echoed back as callback data.
func optionKeyboard(opts []catalog.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Value),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// fileFetcher downloads Telegram-hosted photos by file ID.
type fileFetcher struct {
	api *tgbotapi.BotAPI
}

func (f *fileFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	url, err := f.api.GetFileDirectURL(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download photo: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read photo body: %w", err)
	}
	return data, nil
}
