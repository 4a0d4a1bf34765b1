package dto

import (
	"stayin/internal/domains/billing/model"
	"stayin/internal/domains/billing/session"
	"stayin/shared"
	gDto "stayin/shared/dto"
)

type GenerateBillRequest struct {
	CustomerName    string `json:"customer_name"    validate:"required,max=100"`
	CustomerContact string `json:"customer_contact" validate:"required,len=10,numeric"`
}

type AddItemRequest struct {
	ItemName    string  `json:"item_name"     validate:"required,max=100"`
	Quantity    int     `json:"quantity"      validate:"required,gt=0"`
	CostPerItem float64 `json:"cost_per_item" validate:"gte=0"`
}

// ConfirmRequest gates irrevocable actions behind an explicit acknowledgement.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

type LineItemResponse struct {
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	CostPerItem float64 `json:"cost_per_item"`
	LineTotal   float64 `json:"line_total"`
}

type TableSessionResponse struct {
	TableID         int                `json:"table_id"`
	BillNumber      int                `json:"bill_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerContact string             `json:"customer_contact"`
	LineItems       []LineItemResponse `json:"line_items"`
	GrandTotal      float64            `json:"grand_total"`
	Receipt         string             `json:"receipt"`
}

func (r *TableSessionResponse) FromSession(sess session.BillSession, receipt string) {
	r.TableID = sess.TableID
	r.BillNumber = sess.BillNumber
	r.CustomerName = sess.CustomerName
	r.CustomerContact = sess.CustomerContact
	r.GrandTotal = sess.GrandTotal
	r.Receipt = receipt

	r.LineItems = make([]LineItemResponse, len(sess.LineItems))
	for i, item := range sess.LineItems {
		r.LineItems[i] = LineItemResponse{
			ItemName:    item.ItemName,
			Quantity:    item.Quantity,
			CostPerItem: item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
}

type ComputeTotalResponse struct {
	TableID    int     `json:"table_id"`
	BillNumber int     `json:"bill_number"`
	GrandTotal float64 `json:"grand_total"`
}

type SaveBillResponse struct {
	TableID    int    `json:"table_id"`
	BillNumber int    `json:"bill_number"`
	ItemsSaved int    `json:"items_saved"`
	Date       string `json:"date"`
}

type LedgerRecordResponse struct {
	ID              string  `json:"id"`
	TableNumber     string  `json:"table_number"`
	CustomerName    string  `json:"customer_name"`
	CustomerContact string  `json:"customer_contact"`
	ItemName        string  `json:"item_name"`
	ItemQuantity    int     `json:"item_quantity"`
	CostPerItem     float64 `json:"cost_per_item"`
	BillNumber      int     `json:"bill_number"`
	Date            string  `json:"date"`
	TotalCost       float64 `json:"total_cost"`
	gDto.Metadata
}

func (r *LedgerRecordResponse) FromModel(mod model.LedgerRow) {
	r.ID = mod.ID
	r.TableNumber = mod.TableNumber
	r.CustomerName = mod.CustomerName
	r.CustomerContact = mod.CustomerContact
	r.ItemName = mod.ItemName
	r.ItemQuantity = mod.ItemQuantity
	r.CostPerItem = mod.CostPerItem
	r.BillNumber = mod.BillNumber
	r.Date = mod.Date
	r.TotalCost = mod.TotalCost
	r.Metadata.FromModel(mod.Metadata)
}

type GetLedgerResponse struct {
	Records   []LedgerRecordResponse `json:"records"`
	TotalPage int                    `json:"total_page"`
	TotalData int                    `json:"total_data"`
}

func (r *GetLedgerResponse) FromModels(models []model.LedgerRow, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Records = make([]LedgerRecordResponse, len(models))
	for i, mod := range models {
		r.Records[i].FromModel(mod)
	}
}
