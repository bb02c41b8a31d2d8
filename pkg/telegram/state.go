package telegram

import (
	"sync"

	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"
)

// Phase represents where a chat is in the expense entry flow.
type Phase string

const (
	PhaseStart  Phase = "start"  // no pending category
	PhaseAdding Phase = "adding" // category chosen, awaiting amount
)

// ChatState holds the conversation state of one chat. When Phase is
// PhaseAdding, Category is the pending selection the next amount goes to.
type ChatState struct {
	Phase    Phase
	Category *expenses.Category
}

// StateManager manages conversation states across chats. State lives in
// process memory only and is lost on restart by design.
type StateManager struct {
	mu     sync.RWMutex
	states map[int64]ChatState
}

// NewStateManager creates a new state manager.
func NewStateManager() *StateManager {
	return &StateManager{
		states: make(map[int64]ChatState),
	}
}

// Get returns the current state for a chat, PhaseStart if none exists yet.
func (sm *StateManager) Get(chatID int64) ChatState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if state, exists := sm.states[chatID]; exists {
		return state
	}
	return ChatState{Phase: PhaseStart}
}

// SetAdding moves a chat into PhaseAdding with the given pending category,
// overwriting any previous selection in one step.
func (sm *StateManager) SetAdding(chatID int64, cat *expenses.Category) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[chatID] = ChatState{Phase: PhaseAdding, Category: cat}
}

// Reset clears the state for a chat, phase and pending category together.
func (sm *StateManager) Reset(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}
