package dto

import "github.com/jhoicas/restocker/internal/domain/entity"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=20"`
	Measure     string `json:"measure" validate:"omitempty,oneof=kg g l ml pcs box bag bottle can pack piece other"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Measure     string `json:"measure"`
}

// ProductListResponse listado de productos más las unidades aceptadas (para el formulario).
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Measures []string          `json:"measures"`
}

// FromProduct convierte la entidad en su salida HTTP.
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Description: p.Description, Measure: p.Measure}
}
