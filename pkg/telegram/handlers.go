package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const serverErrorText = "Ошибка сервера. Попробуйте позже."

// handleCategory returns a handler for one category-selection command. Any
// previous pending selection is overwritten.
func (b *Bot) handleCategory(cat expenses.Category) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		commandsProcessed.WithLabelValues(strings.TrimPrefix(cat.Command, "/")).Inc()
		if update.Message == nil || update.Message.From == nil {
			return
		}

		chatID := update.Message.Chat.ID
		b.stateManager.SetAdding(chatID, &cat)

		b.sendMessage(ctx, chatID, fmt.Sprintf("Добавление расходов в категорию %s. Введите сумму", cat.Name))
	}
}

// handleReset handles /start and /cancel - clears conversation state
func (b *Bot) handleReset(command string) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		commandsProcessed.WithLabelValues(command).Inc()
		if update.Message == nil || update.Message.From == nil {
			return
		}

		chatID := update.Message.Chat.ID
		b.stateManager.Reset(chatID)

		b.sendMessage(ctx, chatID, "Выберите категорию")
	}
}

// handleHelp handles /help command
func (b *Bot) handleHelp(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("help").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	helpText := `Команды:
/food, /general, /fun - выбрать категорию, затем отправьте сумму
/total - расходы за текущий период
/prevTotal - расходы за прошлый период
/report - все операции текущего периода
/scheduledReport - статус бюджета на сегодня
/cancel - отменить ввод суммы`

	b.sendMessage(ctx, update.Message.Chat.ID, helpText)
}

// handleTotal handles /total command
func (b *Bot) handleTotal(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("total").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.sendReport(ctx, update.Message.Chat.ID, b.manager.TotalReport)
}

// handlePrevTotal handles /prevTotal command
func (b *Bot) handlePrevTotal(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("prevTotal").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.sendReport(ctx, update.Message.Chat.ID, b.manager.PrevTotalReport)
}

// handleReport handles /report command
func (b *Bot) handleReport(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("report").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.sendReport(ctx, update.Message.Chat.ID, b.manager.OperationsReport)
}

// handleScheduledReport handles /scheduledReport command - the same pacing
// report the timer broadcasts, on demand.
func (b *Bot) handleScheduledReport(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	commandsProcessed.WithLabelValues("scheduledReport").Inc()
	if update.Message == nil || update.Message.From == nil {
		return
	}

	b.sendReport(ctx, update.Message.Chat.ID, b.manager.PacingReport)
}

// sendReport builds a report and replies with it, or with a generic server
// error if the store query failed. Conversation state is never touched here.
func (b *Bot) sendReport(ctx context.Context, chatID int64, build func(context.Context) (string, error)) {
	report, err := build(ctx)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to build report", "err", err, "chat_id", chatID)
		b.sendMessage(ctx, chatID, serverErrorText)
		return
	}

	b.sendMessage(ctx, chatID, report)
}

// handleMessage handles free text: an amount while a category is pending,
// anything else is an unknown command.
func (b *Bot) handleMessage(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	state := b.stateManager.Get(chatID)
	if state.Phase == PhaseAdding {
		messagesProcessed.WithLabelValues("amount").Inc()
		b.handleAmountInput(ctx, chatID, update.Message.From, state, text)
		return
	}

	messagesProcessed.WithLabelValues("unknown").Inc()
	b.sendMessage(ctx, chatID, "Неизвестная команда!")
}

// handleAmountInput validates and persists an amount for the pending category.
//
// The pending category deliberately survives a successful add: consecutive
// amounts append further expenses to the same category until the user picks
// another one or cancels.
func (b *Bot) handleAmountInput(ctx context.Context, chatID int64, from *models.User, state ChatState, text string) {
	amount, err := strconv.Atoi(text)
	if err != nil {
		b.sendMessage(ctx, chatID, "Неправильный формат суммы!")
		return
	}

	if amount <= 0 {
		b.sendMessage(ctx, chatID, "Сумма должна быть больше нуля!")
		return
	}

	// Unreachable through normal transitions, guarded anyway.
	if state.Category == nil {
		b.stateManager.Reset(chatID)
		b.sendMessage(ctx, chatID, "Что-то пошло не так: выберите категорию")
		return
	}

	expense, err := b.manager.AddExpense(ctx, *state.Category, amount, from.ID, from.Username)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to create expense", "err", err, "chat_id", chatID)
		b.sendMessage(ctx, chatID, serverErrorText)
		return
	}
	expensesCreated.Inc()

	_, err = b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Расход успешно добавлен!",
		ReplyMarkup: deleteKeyboard(expense.Amount, expense.ID),
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		b.logger.Error(ctx, "failed to send confirmation", "err", err, "chat_id", chatID)
	}

	b.sendReport(ctx, chatID, b.manager.TotalReport)
}

// handleCallback handles inline undo button presses.
func (b *Bot) handleCallback(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	var chatID int64
	if msg := callback.Message.Message; msg != nil {
		chatID = msg.Chat.ID
	} else {
		b.logger.Error(ctx, "callback message is nil")
		return
	}

	var payload deleteCallback
	if err := json.Unmarshal([]byte(callback.Data), &payload); err != nil || payload.Command != "delete" {
		errorsTotal.WithLabelValues("callback_data").Inc()
		b.logger.Error(ctx, "unexpected callback data", "data", callback.Data)
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            "Неизвестное действие",
		})
		return
	}

	callbacksProcessed.WithLabelValues("delete").Inc()

	deleted, err := b.manager.DeleteExpense(ctx, payload.EventID)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to delete expense", "err", err, "expense_id", payload.EventID)
		_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callback.ID,
			Text:            serverErrorText,
			ShowAlert:       true,
		})
		return
	}

	_, _ = botAPI.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	if !deleted {
		b.sendMessage(ctx, chatID, "Расход уже удалён.")
		return
	}
	expensesDeleted.Inc()

	b.sendMessage(ctx, chatID, fmt.Sprintf("Расход %d удалён.", payload.Amount))
	b.sendReport(ctx, chatID, b.manager.TotalReport)
}
