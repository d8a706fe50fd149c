package dto

import "time"

// DashboardOverviewDTO respuesta de GET /api/dashboard/overview.
type DashboardOverviewDTO struct {
	TotalProducts        int             `json:"total_products"`
	ProductsWithStock    int             `json:"products_with_stock"`
	ProductsWithoutStock []string        `json:"products_without_stock"` // nombres; no aparecen en /api/instock
	TotalUnits           int             `json:"total_units"`
	Counts               FilterCountsDTO `json:"counts"`
	ExpiredProducts      int             `json:"expired_products"`
	NextExpiry           *NextExpiryDTO  `json:"next_expiry"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// NextExpiryDTO el próximo vencimiento aún no ocurrido.
type NextExpiryDTO struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	ExpiryDate  time.Time `json:"expiry_date"`
	DaysLeft    int       `json:"days_left"`
}
