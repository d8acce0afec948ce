// internal/domain/finance/dto.go
package finance

type RecordAdvanceRequest struct {
	PartyID    int64   `json:"party_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	ReceivedOn string  `json:"received_on"` // YYYY-MM-DD, defaults to today
	Notes      string  `json:"notes"`
}

type RecordExpenditureRequest struct {
	Category string  `json:"category" binding:"required,max=100"`
	Amount   float64 `json:"amount" binding:"required"`
	SpentOn  string  `json:"spent_on"` // YYYY-MM-DD, defaults to today
	Notes    string  `json:"notes"`
}

type ExpenditureListFilters struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type ExpenditureListResponse struct {
	Expenditures []Expenditure `json:"expenditures"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
}
