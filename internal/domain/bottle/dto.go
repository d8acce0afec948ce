// internal/domain/bottle/dto.go
package bottle

type SetOpeningBottlesRequest struct {
	CustomerID     int64 `json:"customer_id" binding:"required"`
	ProductID      int64 `json:"product_id" binding:"required"`
	OpeningBottles *int  `json:"opening_bottles" binding:"required"`
}

type MigrationResult struct {
	CustomersMigrated int `json:"customers_migrated"`
}
