package telegram

import (
	"sync"
	"testing"

	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"
)

func TestStateManagerDefaults(t *testing.T) {
	sm := NewStateManager()

	state := sm.Get(1)
	if state.Phase != PhaseStart {
		t.Errorf("default phase = %q, want %q", state.Phase, PhaseStart)
	}
	if state.Category != nil {
		t.Errorf("default category = %v, want nil", state.Category)
	}
}

func TestStateManagerTransitions(t *testing.T) {
	sm := NewStateManager()
	food := &expenses.Category{Name: "FOOD", Command: "/food", Limit: 500}
	fun := &expenses.Category{Name: "FUN", Command: "/fun", Limit: 300}

	sm.SetAdding(1, food)
	state := sm.Get(1)
	if state.Phase != PhaseAdding || state.Category != food {
		t.Errorf("after SetAdding got %+v", state)
	}

	// a new selection overwrites phase and category together
	sm.SetAdding(1, fun)
	if state := sm.Get(1); state.Category != fun {
		t.Errorf("after second SetAdding category = %v, want %v", state.Category, fun)
	}

	// reset clears both
	sm.Reset(1)
	state = sm.Get(1)
	if state.Phase != PhaseStart || state.Category != nil {
		t.Errorf("after Reset got %+v", state)
	}
}

func TestStateManagerPerChatIsolation(t *testing.T) {
	sm := NewStateManager()
	food := &expenses.Category{Name: "FOOD"}

	sm.SetAdding(1, food)
	if state := sm.Get(2); state.Phase != PhaseStart {
		t.Errorf("chat 2 phase = %q, want %q", state.Phase, PhaseStart)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := NewStateManager()
	cat := &expenses.Category{Name: "GENERAL"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			sm.SetAdding(chatID, cat)
			_ = sm.Get(chatID)
			sm.Reset(chatID)
		}(int64(i % 5))
	}
	wg.Wait()
}
