package session_test

import (
	"stayin/internal/domains/billing/session"
	"testing"
)

func TestNewManagerCreatesAllTables(t *testing.T) {
	manager := session.NewManager()

	for tableID := 1; tableID <= session.TableCount; tableID++ {
		sess, err := manager.Get(tableID)
		if err != nil {
			t.Fatalf("table %d: unexpected error: %v", tableID, err)
		}

		if sess.TableID != tableID {
			t.Errorf("table %d: got table id %d", tableID, sess.TableID)
		}

		if sess.BillNumber < 1000 || sess.BillNumber > 9999 {
			t.Errorf("table %d: bill number %d out of range", tableID, sess.BillNumber)
		}

		if len(sess.LineItems) != 0 || sess.GrandTotal != 0 {
			t.Errorf("table %d: expected empty session", tableID)
		}
	}
}

func TestGetUnknownTable(t *testing.T) {
	manager := session.NewManager()

	tests := []int{0, 9, -1, 100}
	for _, tableID := range tests {
		if _, err := manager.Get(tableID); err != session.ErrUnknownTable {
			t.Errorf("table %d: expected ErrUnknownTable, got %v", tableID, err)
		}
	}
}

func TestAddItemArithmetic(t *testing.T) {
	tests := []struct {
		name      string
		itemName  string
		quantity  int
		unitPrice float64
		wantTotal float64
	}{
		{name: "coffee", itemName: "Coffee", quantity: 2, unitPrice: 3.50, wantTotal: 7.00},
		{name: "single item", itemName: "Tea", quantity: 1, unitPrice: 25, wantTotal: 25},
		{name: "free item", itemName: "Water", quantity: 3, unitPrice: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sess session.BillSession

			item := sess.AddItem(tt.itemName, tt.quantity, tt.unitPrice)

			if item.LineTotal != tt.wantTotal {
				t.Errorf("line total: got %v, want %v", item.LineTotal, tt.wantTotal)
			}

			if sess.GrandTotal != tt.wantTotal {
				t.Errorf("grand total: got %v, want %v", sess.GrandTotal, tt.wantTotal)
			}
		})
	}
}

func TestGrandTotalIsSumOfLineTotals(t *testing.T) {
	var sess session.BillSession

	items := []struct {
		name  string
		qty   int
		price float64
	}{
		{"Coffee", 2, 3.50},
		{"Momo", 1, 120},
		{"Dal Bhat", 3, 250},
	}

	want := 0.0
	for _, it := range items {
		sess.AddItem(it.name, it.qty, it.price)
		want += float64(it.qty) * it.price
	}

	if len(sess.LineItems) != len(items) {
		t.Fatalf("expected %d line items, got %d", len(items), len(sess.LineItems))
	}

	if sess.GrandTotal != want {
		t.Errorf("grand total: got %v, want %v", sess.GrandTotal, want)
	}
}

func TestStartBillClearsItems(t *testing.T) {
	var sess session.BillSession
	sess.AddItem("Coffee", 2, 3.50)

	sess.StartBill("Ram", "9876543210")

	if sess.CustomerName != "Ram" || sess.CustomerContact != "9876543210" {
		t.Error("customer identity not committed")
	}

	if len(sess.LineItems) != 0 || sess.GrandTotal != 0 {
		t.Error("expected items and grand total cleared")
	}
}

func TestResetInstallsFreshSession(t *testing.T) {
	manager := session.NewManager()

	sess, err := manager.Get(1)
	if err != nil {
		t.Fatal(err)
	}

	sess.StartBill("Ram", "9876543210")
	sess.AddItem("Coffee", 2, 3.50)

	if err := manager.Replace(1, sess); err != nil {
		t.Fatal(err)
	}

	fresh, err := manager.Reset(1)
	if err != nil {
		t.Fatal(err)
	}

	if fresh.CustomerName != "" || len(fresh.LineItems) != 0 || fresh.GrandTotal != 0 {
		t.Error("expected empty state after reset")
	}

	got, err := manager.Get(1)
	if err != nil {
		t.Fatal(err)
	}

	if got.GrandTotal != 0 || len(got.LineItems) != 0 {
		t.Error("reset session not stored")
	}
}

func TestReplacePreservesTableIdentity(t *testing.T) {
	manager := session.NewManager()

	sess, err := manager.Get(2)
	if err != nil {
		t.Fatal(err)
	}

	sess.TableID = 5

	if err := manager.Replace(2, sess); err != nil {
		t.Fatal(err)
	}

	got, err := manager.Get(2)
	if err != nil {
		t.Fatal(err)
	}

	if got.TableID != 2 {
		t.Errorf("table id drifted to %d", got.TableID)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	manager := session.NewManager()

	sess, err := manager.Get(1)
	if err != nil {
		t.Fatal(err)
	}

	sess.AddItem("Coffee", 2, 3.50)

	if err := manager.Replace(1, sess); err != nil {
		t.Fatal(err)
	}

	other, err := manager.Get(2)
	if err != nil {
		t.Fatal(err)
	}

	if len(other.LineItems) != 0 || other.GrandTotal != 0 {
		t.Error("table 2 picked up table 1 state")
	}
}
