package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"
	"github.com/CreaRec/crea-expenses-bot/pkg/services"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/vmkteam/embedlog"
)

type Bot struct {
	api          *bot.Bot
	logger       embedlog.Logger
	manager      *expenses.Manager
	journal      *services.Journal
	stateManager *StateManager
	allowed      map[int64]struct{}
	notify       []int64
	debug        bool
}

type Config struct {
	Token        string
	Debug        bool
	AllowedUsers []int64
	NotifyChats  []int64
}

// New creates a new Telegram bot instance
func New(ctx context.Context, cfg Config, manager *expenses.Manager, journal *services.Journal, logger embedlog.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	b := &Bot{
		logger:       logger,
		manager:      manager,
		journal:      journal,
		stateManager: NewStateManager(),
		allowed:      make(map[int64]struct{}, len(cfg.AllowedUsers)),
		notify:       cfg.NotifyChats,
		debug:        cfg.Debug,
	}

	for _, id := range cfg.AllowedUsers {
		b.allowed[id] = struct{}{}
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(defaultHandler(logger)),
		bot.WithMiddlewares(b.accessCheck, b.journalInbound),
	}

	if cfg.Debug {
		opts = append(opts, bot.WithDebug())
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	b.api = api

	// Register command handlers
	b.registerHandlers()

	return b, nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	me, err := b.api.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bot info: %w", err)
	}

	b.logger.Print(ctx, "telegram bot started", "username", me.Username, "id", me.ID)
	b.api.Start(ctx)

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping telegram bot")
}

// registerHandlers registers all command handlers
func (b *Bot) registerHandlers() {
	// Category selection commands
	for _, cat := range b.manager.Categories() {
		b.api.RegisterHandler(bot.HandlerTypeMessageText, cat.Command, bot.MatchTypeExact, b.handleCategory(cat))
	}

	// Command handlers
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, b.handleReset("start"))
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, b.handleReset("cancel"))
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, b.handleHelp)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/total", bot.MatchTypeExact, b.handleTotal)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/prevTotal", bot.MatchTypeExact, b.handlePrevTotal)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/report", bot.MatchTypeExact, b.handleReport)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "/scheduledReport", bot.MatchTypeExact, b.handleScheduledReport)

	// Callback query handler for inline undo buttons
	b.api.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, b.handleCallback)

	// Text message handler (amount entry and unknown input)
	b.api.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, b.handleMessage)
}

// defaultHandler handles updates no other handler matched
func defaultHandler(logger embedlog.Logger) bot.HandlerFunc {
	return func(ctx context.Context, botAPI *bot.Bot, update *models.Update) {
		if update.Message != nil {
			logger.Print(ctx, "unhandled update", "text", update.Message.Text)
		}
	}
}

// sendMessage sends a plain text reply with the main keyboard attached.
func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: mainKeyboard(b.manager.Categories()),
	})
	if err != nil {
		errorsTotal.WithLabelValues("send").Inc()
		b.logger.Error(ctx, "failed to send message", "err", err, "chat_id", chatID)
	}
}
