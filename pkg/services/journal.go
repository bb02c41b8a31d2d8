package services

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Journal records bot activity into one append-only file per calendar day
// under the logs directory. It captures inbound message metadata and
// scheduled-notification outcomes; write failures are never fatal.
type Journal struct {
	log *slog.Logger
	w   *dailyWriter
}

func NewJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	w := &dailyWriter{dir: dir}

	return &Journal{
		log: slog.New(slog.NewTextHandler(w, nil)),
		w:   w,
	}, nil
}

// Message records an inbound chat message.
func (j *Journal) Message(chatID, userID int64, userName, kind string) {
	j.log.Info("message received", "chat_id", chatID, "user_id", userID, "user_name", userName, "kind", kind)
}

// AccessDenied records a rejected message from a user outside the allow-list.
func (j *Journal) AccessDenied(chatID, userID int64, userName string) {
	j.log.Info("access denied", "chat_id", chatID, "user_id", userID, "user_name", userName)
}

// NotificationSent records a delivered scheduled report.
func (j *Journal) NotificationSent(chatID int64) {
	j.log.Info("scheduled report sent", "chat_id", chatID)
}

// NotificationFailed records a scheduled report that could not be delivered.
func (j *Journal) NotificationFailed(chatID int64, err error) {
	j.log.Error("scheduled report failed", "chat_id", chatID, "err", err)
}

// Close closes the current day file.
func (j *Journal) Close() error {
	return j.w.Close()
}

// dailyWriter appends to <dir>/<YYYY-MM-DD>.log, switching files when the
// calendar day changes.
type dailyWriter struct {
	mu   sync.Mutex
	dir  string
	day  string
	file *os.File
}

func (w *dailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := time.Now().Format("2006-01-02")
	if w.file == nil || day != w.day {
		if w.file != nil {
			_ = w.file.Close()
		}

		file, err := os.OpenFile(filepath.Join(w.dir, day+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return 0, err
		}
		w.file, w.day = file, day
	}

	return w.file.Write(p)
}

func (w *dailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	return err
}
