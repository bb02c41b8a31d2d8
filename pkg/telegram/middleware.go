package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// updateMeta extracts user and chat identity from an inbound update.
// ok is false for update kinds the bot does not dispatch on.
func updateMeta(update *models.Update) (userID, chatID int64, userName string, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, update.Message.Chat.ID, update.Message.From.Username, true
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
		userName = update.CallbackQuery.From.Username
		if msg := update.CallbackQuery.Message.Message; msg != nil {
			chatID = msg.Chat.ID
		}
		return userID, chatID, userName, true
	default:
		return 0, 0, "", false
	}
}

// accessCheck short-circuits every update from a user outside the allow-list
// with a fixed reply, before any state is touched.
func (b *Bot) accessCheck(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		userID, chatID, userName, ok := updateMeta(update)
		if !ok {
			next(ctx, botAPI, update)
			return
		}

		if _, allowed := b.allowed[userID]; !allowed {
			accessDenied.Inc()
			b.journal.AccessDenied(chatID, userID, userName)
			b.logger.Print(ctx, "access denied", "user_id", userID, "user_name", userName)

			if chatID != 0 {
				_, _ = botAPI.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "Нет доступа.",
				})
			}
			return
		}

		next(ctx, botAPI, update)
	}
}

// journalInbound records inbound message metadata into the daily journal.
func (b *Bot) journalInbound(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		if userID, chatID, userName, ok := updateMeta(update); ok {
			kind := "message"
			if update.CallbackQuery != nil {
				kind = "callback"
			}
			b.journal.Message(chatID, userID, userName, kind)
		}

		next(ctx, botAPI, update)
	}
}
