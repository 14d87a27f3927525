package common

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mentorhub/mentorhub-bot/internal/controller/callbacks/callbacktypes"
	"github.com/mentorhub/mentorhub-bot/internal/model"
)

var (
	ErrNoMessage = errors.New("no message in callback")
	ErrNotAdmin  = errors.New("user is not an admin")
	ErrNotMentor = errors.New("user is not a mentor")
)

// HandlerContext bundles what every callback handler needs: the callback,
// the chat, and the linked platform account. Saves each handler from
// re-fetching the account and re-deriving the chat id.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Account    *model.Account
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadAccount resolves the linked platform account into the context.
func (hc *HandlerContext) LoadAccount() error {
	account, err := hc.Handler.Accounts.Get(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Account = account
	return nil
}

// RequireAdmin loads the account and checks the admin role.
func (hc *HandlerContext) RequireAdmin() error {
	if err := hc.LoadAccount(); err != nil {
		return err
	}
	if !hc.Account.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// RequireMentor loads the account and checks the mentor role.
func (hc *HandlerContext) RequireMentor() error {
	if err := hc.LoadAccount(); err != nil {
		return err
	}
	if !hc.Account.IsMentor() {
		return ErrNotMentor
	}
	return nil
}

// Session returns the platform session cookie of the loaded account.
func (hc *HandlerContext) Session() string {
	if hc.Account == nil {
		return ""
	}
	return hc.Account.SessionCookie
}

// Answer acknowledges the callback with a toast.
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert acknowledges the callback with a blocking alert.
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage rewrites the message the callback originated from.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)
	return err
}

// Send posts a fresh message into the callback's chat.
func (hc *HandlerContext) Send(text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: hc.ChatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, _ = hc.Bot.SendMessage(hc.Ctx, params)
}
