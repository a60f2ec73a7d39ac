package kyc

import (
	"time"

	"github.com/ssrlogistics/backend/internal/domain/shared"
)

// AllowedFields is the fixed allow-list for customer KYC inserts and
// updates. Unknown submitted fields are silently dropped.
var AllowedFields = shared.NewFieldSet(
	"date", "branch", "name", "address", "customer_type", "status",
	"year_of_establishment", "director", "pan", "aadhar",
	"branch_office", "office_address", "state", "gstin", "remarks",
	"gst_remarks", "annual_turnover", "mto_iec_cha_validity",
	"aeo_validity", "export_commodities", "email_export", "email_import",
	"bank_details", "contact_person_export", "contact_person_import",
)

// DocumentFields are the multipart file fields accepted on create. Each
// uploaded document is stored in object storage and its key persisted on
// the customer row.
var DocumentFields = []string{"gstin_doc", "pan_doc", "iec_doc", "kyc_letterhead_doc"}

// AllowedDocumentFields extends AllowedFields with the document-key
// columns, for update paths that patch stored keys directly.
var AllowedDocumentFields = func() shared.FieldSet {
	s := shared.NewFieldSet(DocumentFields...)
	for k := range AllowedFields {
		s[k] = struct{}{}
	}
	return s
}()

// Customer is a KYC onboarding record.
type Customer struct {
	CustomerID          int64     `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	Date                string    `gorm:"column:date;type:varchar(50)" json:"date"`
	Branch              string    `gorm:"column:branch;type:varchar(100)" json:"branch"`
	Name                string    `gorm:"column:name;type:varchar(200)" json:"name"`
	Address             string    `gorm:"column:address;type:text" json:"address"`
	CustomerType        string    `gorm:"column:customer_type;type:varchar(100)" json:"customer_type"`
	Status              string    `gorm:"column:status;type:varchar(50)" json:"status"`
	YearOfEstablishment string    `gorm:"column:year_of_establishment;type:varchar(10)" json:"year_of_establishment"`
	Director            string    `gorm:"column:director;type:varchar(200)" json:"director"`
	PAN                 string    `gorm:"column:pan;type:varchar(20)" json:"pan"`
	Aadhar              string    `gorm:"column:aadhar;type:varchar(20)" json:"aadhar"`
	BranchOffice        string    `gorm:"column:branch_office;type:varchar(200)" json:"branch_office"`
	OfficeAddress       string    `gorm:"column:office_address;type:text" json:"office_address"`
	State               string    `gorm:"column:state;type:varchar(100)" json:"state"`
	GSTIN               string    `gorm:"column:gstin;type:varchar(20)" json:"gstin"`
	Remarks             string    `gorm:"column:remarks;type:text" json:"remarks"`
	GSTRemarks          string    `gorm:"column:gst_remarks;type:text" json:"gst_remarks"`
	AnnualTurnover      string    `gorm:"column:annual_turnover;type:varchar(50)" json:"annual_turnover"`
	MTOIECCHAValidity   string    `gorm:"column:mto_iec_cha_validity;type:varchar(100)" json:"mto_iec_cha_validity"`
	AEOValidity         string    `gorm:"column:aeo_validity;type:varchar(100)" json:"aeo_validity"`
	ExportCommodities   string    `gorm:"column:export_commodities;type:text" json:"export_commodities"`
	EmailExport         string    `gorm:"column:email_export;type:varchar(200)" json:"email_export"`
	EmailImport         string    `gorm:"column:email_import;type:varchar(200)" json:"email_import"`
	BankDetails         string    `gorm:"column:bank_details;type:text" json:"bank_details"`
	ContactPersonExport string    `gorm:"column:contact_person_export;type:varchar(200)" json:"contact_person_export"`
	ContactPersonImport string    `gorm:"column:contact_person_import;type:varchar(200)" json:"contact_person_import"`
	GSTINDoc            string    `gorm:"column:gstin_doc;type:varchar(500)" json:"gstin_doc"`
	PANDoc              string    `gorm:"column:pan_doc;type:varchar(500)" json:"pan_doc"`
	IECDoc              string    `gorm:"column:iec_doc;type:varchar(500)" json:"iec_doc"`
	KYCLetterheadDoc    string    `gorm:"column:kyc_letterhead_doc;type:varchar(500)" json:"kyc_letterhead_doc"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customer"
}

// IsDocumentField reports whether name is one of the document columns
func IsDocumentField(name string) bool {
	for _, f := range DocumentFields {
		if f == name {
			return true
		}
	}
	return false
}

// DocumentsByField maps each document column to its stored key.
// Empty values mean the document was never uploaded.
func (c *Customer) DocumentsByField() map[string]string {
	return map[string]string{
		"gstin_doc":          c.GSTINDoc,
		"pan_doc":            c.PANDoc,
		"iec_doc":            c.IECDoc,
		"kyc_letterhead_doc": c.KYCLetterheadDoc,
	}
}

// DocumentKeys returns the stored keys of all uploaded documents
func (c *Customer) DocumentKeys() []string {
	var keys []string
	for _, key := range c.DocumentsByField() {
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
