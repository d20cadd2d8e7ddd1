package model

// ImportBatch records one processed upload file, successful or not.
type ImportBatch struct {
	BatchID     string `db:"batch_id" json:"batchId"`
	Source      string `db:"source" json:"source"`
	Filename    string `db:"filename" json:"filename"`
	DetailDate  string `db:"detail_date" json:"detailDate"`
	Status      string `db:"status" json:"status"`
	RecordCount int    `db:"record_count" json:"recordCount"`
	ErrorText   string `db:"error_text" json:"errorText"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

const (
	BatchSourceInventory = "inventory"
	BatchSourceSales     = "sales"

	BatchStatusSuccess = "success"
	BatchStatusEmpty   = "empty"
	BatchStatusFailed  = "failed"
)
