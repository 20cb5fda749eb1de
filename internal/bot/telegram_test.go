package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/dialogue"
)

func msgUpdate(text string, entities []tgbotapi.MessageEntity) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 99},
		Text:     text,
		Entities: entities,
	}}
}

func commandUpdate(cmd string) tgbotapi.Update {
	return msgUpdate(cmd, []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}})
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 99}},
	}}
}

func TestDecodeUpdate(t *testing.T) {
	tests := []struct {
		name string
		upd  tgbotapi.Update
		want dialogue.Event
		ok   bool
	}{
		{"begin command", commandUpdate("/begin"), dialogue.Begin{}, true},
		{"cancel command", commandUpdate("/cancel"), dialogue.Cancel{}, true},
		{"done command", commandUpdate("/done"), dialogue.Finalize{}, true},
		{"unknown command", commandUpdate("/frobnicate"), nil, false},
		{"plain text", msgUpdate("01.03.2024", nil), dialogue.Text{Content: "01.03.2024"}, true},
		{"select button", callbackUpdate("petrov"), dialogue.Select{Value: "petrov"}, true},
		{"finish button", callbackUpdate(dialogue.FinalizeValue), dialogue.Finalize{}, true},
		{"empty update", tgbotapi.Update{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatID, ev, ok := decodeUpdate(tt.upd)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, int64(99), chatID)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestDecodeUpdate_PhotoPicksLargestSize(t *testing.T) {
	upd := tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: 99},
		Caption: "trawl deck",
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90},
			{FileID: "medium", Width: 320},
			{FileID: "large", Width: 1280},
		},
	}}

	chatID, ev, ok := decodeUpdate(upd)
	require.True(t, ok)
	assert.Equal(t, int64(99), chatID)
	assert.Equal(t, dialogue.Photo{Ref: "large", Caption: "trawl deck"}, ev)
}

func TestOptionKeyboard(t *testing.T) {
	kb := optionKeyboard([]catalog.Option{
		{Value: "petrov", Label: "A. Petrov"},
		{Value: "sidorov", Label: "I. Sidorov"},
	})

	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "A. Petrov", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "petrov", *kb.InlineKeyboard[0][0].CallbackData)
}
