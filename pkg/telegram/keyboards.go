package telegram

import (
	"encoding/json"
	"fmt"

	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"

	"github.com/go-telegram/bot/models"
)

// mainKeyboard returns the reply keyboard with category commands and quick
// actions, matching the command set.
func mainKeyboard(categories expenses.Categories) models.ReplyMarkup {
	row := make([]models.KeyboardButton, 0, len(categories))
	for _, cat := range categories {
		row = append(row, models.KeyboardButton{Text: cat.Command})
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			row,
			{
				{Text: "/total"},
				{Text: "/cancel"},
			},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// deleteCallback is the structured payload carried by the inline undo button.
type deleteCallback struct {
	Command string `json:"command"`
	Amount  int    `json:"amount"`
	EventID int    `json:"eventId"`
}

// deleteKeyboard returns an inline keyboard with an undo button referencing
// the just-created expense.
func deleteKeyboard(amount, eventID int) models.ReplyMarkup {
	data, _ := json.Marshal(deleteCallback{Command: "delete", Amount: amount, EventID: eventID})

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: fmt.Sprintf("❌ Удалить %d", amount), CallbackData: string(data)},
			},
		},
	}
}
