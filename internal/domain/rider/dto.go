// internal/domain/rider/dto.go
package rider

type RecordActivityRequest struct {
	RiderID      int64  `json:"rider_id" binding:"required"`
	ProductID    int64  `json:"product_id" binding:"required"`
	ActivityDate string `json:"activity_date"` // YYYY-MM-DD, defaults to today

	EmptyBottlesReceived  int `json:"empty_bottles_received" binding:"min=0"`
	FilledBottlesSent     int `json:"filled_bottles_sent" binding:"min=0"`
	FilledBottlesReturned int `json:"filled_bottles_returned" binding:"min=0"`

	Notes string `json:"notes"`
}

type AccountabilityQuery struct {
	From string `form:"from"` // YYYY-MM-DD
	To   string `form:"to"`   // YYYY-MM-DD
}

// ComprehensiveReport covers every active rider x active product pair that
// has any activity. Pairs whose lookup failed are omitted and counted.
type ComprehensiveReport struct {
	Entries []Accountability `json:"entries"`
	Skipped int              `json:"skipped,omitempty"`
}

type ActivityListFilters struct {
	RiderID   *int64 `form:"rider_id"`
	ProductID *int64 `form:"product_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

type ActivityListResponse struct {
	Activities []Activity `json:"activities"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}
