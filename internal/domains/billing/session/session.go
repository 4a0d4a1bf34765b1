// Package session holds the in-memory billing state for each restaurant
// table. Sessions live for the process lifetime and are only persisted when a
// bill is explicitly saved.
package session

import (
	"errors"
	"math/rand/v2"
	"sync"
)

const (
	// TableCount is the fixed number of restaurant tables.
	TableCount = 8

	billNumberMin = 1000
	billNumberMax = 9999
)

var ErrUnknownTable = errors.New("unknown table")

type LineItem struct {
	ItemName  string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// BillSession is the accumulated state for one table between resets.
// It is passed by value; mutations go through Manager.Replace.
type BillSession struct {
	TableID         int
	BillNumber      int
	CustomerName    string
	CustomerContact string
	LineItems       []LineItem
	GrandTotal      float64
}

func newSession(tableID int) BillSession {
	return BillSession{
		TableID:    tableID,
		BillNumber: billNumberMin + rand.IntN(billNumberMax-billNumberMin+1),
	}
}

// StartBill fixes the customer identity on the session and clears any
// previously accumulated items so a fresh bill starts under the same bill
// number.
func (s *BillSession) StartBill(name, contact string) {
	s.CustomerName = name
	s.CustomerContact = contact
	s.LineItems = nil
	s.GrandTotal = 0
}

// AddItem appends a line item and increments the grand total.
func (s *BillSession) AddItem(itemName string, quantity int, unitPrice float64) LineItem {
	item := LineItem{
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	}

	s.LineItems = append(s.LineItems, item)
	s.GrandTotal += item.LineTotal

	return item
}

// Manager owns the indexed collection of table sessions. Sessions are
// exchanged by value so no shared mutable references escape the lock.
type Manager struct {
	mu       sync.Mutex
	sessions map[int]BillSession
}

func NewManager() *Manager {
	sessions := make(map[int]BillSession, TableCount)
	for tableID := 1; tableID <= TableCount; tableID++ {
		sessions[tableID] = newSession(tableID)
	}

	return &Manager{sessions: sessions}
}

// Get returns a copy of the session for the given table.
func (m *Manager) Get(tableID int) (BillSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[tableID]
	if !ok {
		return BillSession{}, ErrUnknownTable
	}

	return sess, nil
}

// Replace stores the given session state for its table.
func (m *Manager) Replace(tableID int, sess BillSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[tableID]; !ok {
		return ErrUnknownTable
	}

	sess.TableID = tableID
	m.sessions[tableID] = sess

	return nil
}

// Reset discards the table's session and installs a fresh one with a newly
// generated bill number.
func (m *Manager) Reset(tableID int) (BillSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[tableID]; !ok {
		return BillSession{}, ErrUnknownTable
	}

	sess := newSession(tableID)
	m.sessions[tableID] = sess

	return sess, nil
}
