package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telegram bot metrics
var (
	commandsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_processed_total",
			Help: "Total number of processed commands by type",
		},
		[]string{"command"}, // start, help, cancel, food, general, fun, total, prevTotal, report, scheduledReport
	)

	messagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_messages_processed_total",
			Help: "Total number of processed messages by type",
		},
		[]string{"type"}, // amount, unknown
	)

	callbacksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_processed_total",
			Help: "Total number of processed callback queries by action",
		},
		[]string{"action"}, // delete
	)

	expensesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_expenses_created_total",
			Help: "Total number of expenses created",
		},
	)

	expensesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_expenses_deleted_total",
			Help: "Total number of expenses deleted via undo",
		},
	)

	accessDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_access_denied_total",
			Help: "Total number of messages rejected by the allow-list",
		},
	)

	scheduledReportsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_scheduled_reports_sent_total",
			Help: "Total number of scheduled reports delivered",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // database, send, broadcast, callback_data
	)
)
