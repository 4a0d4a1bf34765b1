package model

import (
	"stayin/internal/domains/billing/session"
	"stayin/shared/model"
	"stayin/shared/timezone"

	"github.com/google/uuid"
)

const (
	TableName  = "hotel_bills"
	EntityName = "bill"

	FieldID              = "id"
	FieldTableNumber     = "table_number"
	FieldCustomerName    = "customer_name"
	FieldCustomerContact = "customer_contact"
	FieldItemName        = "item_name"
	FieldItemQuantity    = "item_quantity"
	FieldCostPerItem     = "cost_per_item"
	FieldBillNumber      = "bill_number"
	FieldDate            = "date"
	FieldTotalCost       = "total_cost"
)

// LedgerRow is one persisted, append-only record of a sold line item.
type LedgerRow struct {
	ID              string  `db:"id"`
	TableNumber     string  `db:"table_number"`
	CustomerName    string  `db:"customer_name"`
	CustomerContact string  `db:"customer_contact"`
	ItemName        string  `db:"item_name"`
	ItemQuantity    int     `db:"item_quantity"`
	CostPerItem     float64 `db:"cost_per_item"`
	BillNumber      int     `db:"bill_number"`
	Date            string  `db:"date"`
	TotalCost       float64 `db:"total_cost"`
	model.Metadata
}

// RowsFromSession flattens a table session into ledger rows, one per line
// item. The date stamp is repeated on every row.
func RowsFromSession(sess session.BillSession, tableLabel, date, user string) []LedgerRow {
	rows := make([]LedgerRow, len(sess.LineItems))

	for i, item := range sess.LineItems {
		rows[i] = LedgerRow{
			ID:              uuid.NewString(),
			TableNumber:     tableLabel,
			CustomerName:    sess.CustomerName,
			CustomerContact: sess.CustomerContact,
			ItemName:        item.ItemName,
			ItemQuantity:    item.Quantity,
			CostPerItem:     item.UnitPrice,
			BillNumber:      sess.BillNumber,
			Date:            date,
			TotalCost:       item.LineTotal,
			Metadata: model.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	return rows
}
