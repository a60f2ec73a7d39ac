package booking

import (
	"time"

	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// Booking statuses are conventional values, not an enum: the column is a
// free-form string and status changes go through an explicit call.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusInTransit = "in-transit"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AllowedFields is the fixed allow-list for booking inserts and updates.
// Every client payload is filtered through it before touching SQL.
var AllowedFields = shared.NewFieldSet(
	"nomination_date", "shipper", "consignee", "agent", "cha", "cfs",
	"hbl", "mbl", "pol", "pod", "final_pod",
	"container_size", "container_count", "container_number",
	"shipping_line", "buy_rate", "sell_rate",
	"etd", "eta", "swb", "telex", "igm_filed", "igm_no", "igm_on",
	"freight_amount", "freight_currency", "do_validity", "incoterms",
	"cargo_type", "marks_and_numbers", "description", "status",
)

// Booking is a shipment job. JobNo is the auto-increment identity; the
// primary-key constraint, not the init-time reconciliation read, is what
// actually prevents duplicates.
type Booking struct {
	JobNo           int64      `gorm:"column:job_no;primaryKey;autoIncrement" json:"job_no"`
	NominationDate  *time.Time `gorm:"column:nomination_date;type:date" json:"nomination_date"`
	Shipper         *int64     `gorm:"column:shipper" json:"shipper"`
	Consignee       *int64     `gorm:"column:consignee" json:"consignee"`
	Agent           *int64     `gorm:"column:agent" json:"agent"`
	CHA             *int64     `gorm:"column:cha" json:"cha"`
	CFS             *int64     `gorm:"column:cfs" json:"cfs"`
	HBL             string     `gorm:"column:hbl;type:varchar(100)" json:"hbl"`
	MBL             string     `gorm:"column:mbl;type:varchar(100)" json:"mbl"`
	POL             string     `gorm:"column:pol;type:varchar(100)" json:"pol"`
	POD             string     `gorm:"column:pod;type:varchar(100)" json:"pod"`
	FinalPOD        string     `gorm:"column:final_pod;type:varchar(100)" json:"final_pod"`
	ContainerSize   string     `gorm:"column:container_size;type:varchar(50)" json:"container_size"`
	ContainerCount  int        `gorm:"column:container_count" json:"container_count"`
	ContainerNumber string     `gorm:"column:container_number;type:varchar(100)" json:"container_number"`
	ShippingLine    string     `gorm:"column:shipping_line;type:varchar(200)" json:"shipping_line"`
	BuyRate         string     `gorm:"column:buy_rate;type:varchar(50)" json:"buy_rate"`
	SellRate        string     `gorm:"column:sell_rate;type:varchar(50)" json:"sell_rate"`
	ETD             *time.Time `gorm:"column:etd;type:date" json:"etd"`
	ETA             *time.Time `gorm:"column:eta;type:date" json:"eta"`
	SWB             bool       `gorm:"column:swb" json:"swb"`
	Telex           bool       `gorm:"column:telex" json:"telex"`
	IGMFiled        bool       `gorm:"column:igm_filed" json:"igm_filed"`
	IGMNo           string     `gorm:"column:igm_no;type:varchar(100)" json:"igm_no"`
	IGMOn           string     `gorm:"column:igm_on;type:varchar(100)" json:"igm_on"`
	FreightAmount   string     `gorm:"column:freight_amount;type:varchar(50)" json:"freight_amount"`
	FreightCurrency string     `gorm:"column:freight_currency;type:varchar(10)" json:"freight_currency"`
	DOValidity      *time.Time `gorm:"column:do_validity;type:date" json:"do_validity"`
	Incoterms       string     `gorm:"column:incoterms;type:varchar(50)" json:"incoterms"`
	CargoType       string     `gorm:"column:cargo_type;type:varchar(100)" json:"cargo_type"`
	MarksAndNumbers string     `gorm:"column:marks_and_numbers;type:text" json:"marks_and_numbers"`
	Description     string     `gorm:"column:description;type:text" json:"description"`
	Status          string     `gorm:"column:status;type:varchar(50);not null;default:'draft'" json:"status"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM
func (Booking) TableName() string {
	return "Booking"
}
