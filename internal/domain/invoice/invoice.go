package invoice

import (
	"encoding/json"
	"time"
)

// LineItem is one invoice row. Amount fields are recomputed server-side
// by the calculator; submitted values for them are not trusted.
type LineItem struct {
	ChargeName string  `json:"chargeName"`
	IsGST      bool    `json:"isGST"`
	TaxType    TaxType `json:"taxType"`
	TaxPercent float64 `json:"taxPercent"`
	Unit       string  `json:"unit"`
	Qty        float64 `json:"qty"`
	Rate       float64 `json:"rate"`
	Currency   string  `json:"currency"`
	ExRate     float64 `json:"exRate"`
	AmountINR  float64 `json:"amountINR"`
	AmountFC   float64 `json:"amountFC"`
	Narration  string  `json:"narration"`
}

// Totals aggregates all lines of an invoice.
type Totals struct {
	Taxable    float64 `json:"taxable"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	GrandTotal float64 `json:"grandTotal"`
}

// Invoice is persisted keyed by invoice number; saving the same number
// again overwrites in place. Customer details, items and totals are
// stored as JSON documents.
type Invoice struct {
	InvoiceNo       string          `gorm:"column:invoice_no;primaryKey;type:varchar(50)" json:"invoice_no"`
	JobNo           int64           `gorm:"column:job_no;not null;index" json:"job_no"`
	InvoiceDate     string          `gorm:"column:invoice_date;type:date" json:"invoice_date"`
	CustomerDetails json.RawMessage `gorm:"column:customer_details;type:json" json:"customer_details"`
	Items           json.RawMessage `gorm:"column:items;type:json" json:"items"`
	Totals          json.RawMessage `gorm:"column:totals;type:json" json:"totals"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "Invoices"
}
