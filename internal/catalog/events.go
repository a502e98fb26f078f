package catalog

type EventType int

const (
	EventSnapshotChanged EventType = iota
	EventLoadingChanged
	EventNotification
	EventPendingDeleteChanged
	EventCellChanged
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is delivered to listeners after the state it describes is in place.
type Event struct {
	Type    EventType
	Level   Level
	Message string
	Loading bool
	Cell    CellKey
}

type Listener func(Event)

// Subscribe registers l and returns a func that removes it. Listeners run on
// the goroutine that caused the change and must not block.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListener
	m.nextListener++
	m.listeners[id] = l

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) emit(e Event) {
	m.mu.Lock()
	ls := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		ls = append(ls, l)
	}
	m.mu.Unlock()

	for _, l := range ls {
		l(e)
	}
}

func (m *Manager) notify(level Level, msg string) {
	m.emit(Event{Type: EventNotification, Level: level, Message: msg})
}
