package telegram

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-telegram/bot"
)

// BroadcastScheduledReport builds one pacing report and fans it out to every
// notify-list chat. Delivery failures are retried a few times, then logged
// per recipient without aborting the remaining fan-out. Conversation state
// is never read or written here.
func (b *Bot) BroadcastScheduledReport(ctx context.Context) {
	report, err := b.manager.PacingReport(ctx)
	if err != nil {
		errorsTotal.WithLabelValues("database").Inc()
		b.logger.Error(ctx, "failed to build scheduled report", "err", err)
		return
	}

	for _, chatID := range b.notify {
		err := retry.Do(
			func() error {
				_, err := b.api.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   report,
				})
				return err
			},
			retry.Attempts(3),
			retry.Delay(2*time.Second),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			errorsTotal.WithLabelValues("broadcast").Inc()
			b.logger.Error(ctx, "failed to deliver scheduled report", "err", err, "chat_id", chatID)
			b.journal.NotificationFailed(chatID, err)
			continue
		}

		scheduledReportsSent.Inc()
		b.journal.NotificationSent(chatID)
	}
}
