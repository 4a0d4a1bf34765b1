package service

import (
	"bytes"
	"fmt"
	"stayin/internal/domains/billing/session"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	receiptHotelName    = "Stay-In Hotel"
	receiptHotelContact = "Contact: 977896765"
	receiptThanks       = "Thank You! Visit Again!"

	receiptRuleWidth = 60
)

// renderReceipt produces the plain-text bill receipt for a table session.
func renderReceipt(sess session.BillSession, date string) string {
	var b strings.Builder

	heavy := strings.Repeat("=", receiptRuleWidth)
	light := strings.Repeat("-", receiptRuleWidth)

	fmt.Fprintf(&b, "%26s\n", receiptHotelName)
	fmt.Fprintf(&b, "%24s\n", receiptHotelContact)
	fmt.Fprintln(&b, heavy)
	fmt.Fprintf(&b, "       Table-%d | Bill No: %d | %s\n", sess.TableID, sess.BillNumber, date)
	fmt.Fprintln(&b, heavy)

	if sess.CustomerName == "" {
		return b.String()
	}

	fmt.Fprintf(&b, "Customer: %s\n", sess.CustomerName)
	fmt.Fprintf(&b, "Contact : %s\n", sess.CustomerContact)
	fmt.Fprintln(&b, light)
	fmt.Fprintf(&b, "%-20s %-8s %-10s %s\n", "Item Name", "Qty", "Rate", "Total")
	fmt.Fprintln(&b, light)

	for _, item := range sess.LineItems {
		fmt.Fprintf(&b, "%-20s %-8d $%-9.2f $%.2f\n", item.ItemName, item.Quantity, item.UnitPrice, item.LineTotal)
	}

	if sess.GrandTotal > 0 {
		fmt.Fprintln(&b, light)
		fmt.Fprintf(&b, "%50s $%.2f\n", "GRAND TOTAL", sess.GrandTotal)
		fmt.Fprintln(&b, heavy)
		fmt.Fprintf(&b, "          %s\n", receiptThanks)
	}

	return b.String()
}

// renderReceiptPDF renders the same receipt as an A4 PDF document using a
// monospaced font so the column layout survives.
func renderReceiptPDF(sess session.BillSession, date string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Courier", "", 10)

	for _, line := range strings.Split(renderReceipt(sess, date), "\n") {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}

	return buf.Bytes(), nil
}
