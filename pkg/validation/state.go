package validation

import "sync"

// PassState is the lifecycle state of an engine.
type PassState int

const (
	Idle PassState = iota
	Running
)

func (s PassState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

type passEvent string

const (
	eventStart  passEvent = "start"
	eventFinish passEvent = "finish"
)

// passTransitions lists the accepted events per state.
var passTransitions = map[PassState]map[passEvent]PassState{
	Idle:    {eventStart: Running},
	Running: {eventFinish: Idle},
}

type passMachine struct {
	mu      sync.RWMutex
	current PassState
}

func (m *passMachine) Current() PassState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *passMachine) Fire(event passEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	to, ok := passTransitions[m.current][event]
	if !ok {
		return &TransitionError{From: m.current, Event: string(event)}
	}
	m.current = to
	return nil
}
