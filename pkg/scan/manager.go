package scan

import (
	"sync"
)

// Manager keeps one ephemeral scan session per owner. Sessions live in
// memory only and disappear on reset or process restart.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	inventory Inventory
	ledger    Ledger
	decoder   Decoder
}

func NewManager(inventory Inventory, ledger Ledger, decoder Decoder) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		inventory: inventory,
		ledger:    ledger,
		decoder:   decoder,
	}
}

func (m *Manager) Session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		session = NewSession(userID, m.inventory, m.ledger, m.decoder)
		m.sessions[userID] = session
	}
	return session
}

// Reset discards the owner's session, releasing any active capture.
func (m *Manager) Reset(userID string) {
	m.mu.Lock()
	session := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if session != nil {
		session.StopScan()
	}
}
