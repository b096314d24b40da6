package archipelago

import (
	"sync"

	"archipelago/internal/migration"
	dErrors "archipelago/pkg/domain-errors"
)

// Mailbox holds one queue of inbound migrants per ordinal. Deposits never
// block beyond the critical section; extraction drains a slot atomically.
// Within a slot, each producer's emissions keep their order; emissions of
// different producers may interleave.
type Mailbox struct {
	mu    sync.Mutex
	slots []migration.Group
}

func newMailbox(n int) *Mailbox {
	return &Mailbox{slots: make([]migration.Group, n)}
}

func (m *Mailbox) addSlot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, migration.Group{})
}

// Len is the number of slots.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// Deposit appends group to the slot of ordinal.
func (m *Mailbox) Deposit(ordinal int, group migration.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOrdinal(ordinal); err != nil {
		return err
	}
	m.slots[ordinal].Append(group)
	return nil
}

// ExtractAll removes and returns everything queued for ordinal.
func (m *Mailbox) ExtractAll(ordinal int) (migration.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOrdinal(ordinal); err != nil {
		return migration.Group{}, err
	}
	return m.slots[ordinal].Take(), nil
}

// Snapshot returns a deep copy of every slot without draining.
func (m *Mailbox) Snapshot() []migration.Group {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]migration.Group, len(m.slots))
	for i, g := range m.slots {
		out[i] = g.Clone()
	}
	return out
}

// replace swaps in a whole set of slots. Callers validate the length.
func (m *Mailbox) replace(slots []migration.Group) {
	c := make([]migration.Group, len(slots))
	for i, g := range slots {
		c[i] = g.Clone()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = c
}

func (m *Mailbox) checkOrdinal(ordinal int) error {
	if ordinal < 0 || ordinal >= len(m.slots) {
		return dErrors.Newf(dErrors.CodeOutOfRange,
			"cannot access the migrants of the island at index %d: the migrants database has a size of only %d",
			ordinal, len(m.slots))
	}
	return nil
}
