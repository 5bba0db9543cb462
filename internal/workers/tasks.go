// internal/workers/tasks.go
package workers

// Task type names registered on the asynq mux. Handlers enqueue these;
// the worker binary routes them to processors.
const (
	TypeInsightsRefresh  = "insights:refresh"
	TypeExcelImport      = "import:excel"
	TypeDealReceipt      = "notifications:deal"
	TypeMediaCleanup     = "media:cleanup"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// InsightsRefreshPayload asks for a dealer's cached insight keys to be
// rebuilt after a settlement or deletion changed sold-unit history.
type InsightsRefreshPayload struct {
	DealerID string `json:"dealer_id"`
}

// ExcelImportPayload describes one uploaded workbook of devices
type ExcelImportPayload struct {
	JobID    string `json:"job_id"`
	DealerID string `json:"dealer_id"`
	FilePath string `json:"file_path"`
}

// DealReceiptPayload carries what the receipt email needs
type DealReceiptPayload struct {
	DealID       string `json:"deal_id"`
	DealerID     string `json:"dealer_id"`
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact"`
	TotalAmount  string `json:"total_amount"`
	DealType     string `json:"deal_type"`
}
