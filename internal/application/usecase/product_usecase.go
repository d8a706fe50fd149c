package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
)

// ProductUseCase alta y listado de productos. Los productos no se editan ni se eliminan.
type ProductUseCase struct {
	backend ports.InventoryBackend
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(backend ports.InventoryBackend) *ProductUseCase {
	return &ProductUseCase{backend: backend}
}

// List devuelve los productos del usuario en el orden del backend.
func (uc *ProductUseCase) List(ctx context.Context, s ports.Session) (*dto.ProductListResponse, error) {
	products, err := uc.backend.ListProducts(ctx, s)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items:    make([]dto.ProductResponse, 0, len(products)),
		Measures: entity.Measures,
	}
	for _, p := range products {
		out.Items = append(out.Items, dto.FromProduct(p))
	}
	return out, nil
}

// Create valida y crea un producto. La validación ocurre antes de llamar al backend.
func (uc *ProductUseCase) Create(ctx context.Context, s ports.Session, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p, err := ValidateProduct(in)
	if err != nil {
		return nil, err
	}
	if err := uc.backend.AddProduct(ctx, s, p); err != nil {
		return nil, err
	}
	out := dto.FromProduct(p)
	return &out, nil
}

// ValidateProduct normaliza la entrada y aplica las reglas del formulario.
func ValidateProduct(in dto.CreateProductRequest) (entity.Product, error) {
	p := entity.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Measure:     entity.NormalizeMeasure(in.Measure),
	}
	if p.Name == "" {
		return p, domain.Invalid("name", "el nombre es requerido")
	}
	if utf8.RuneCountInString(p.Description) > entity.MaxDescriptionLength {
		return p, domain.Invalid("description", fmt.Sprintf("máximo %d caracteres", entity.MaxDescriptionLength))
	}
	if !entity.IsValidMeasure(p.Measure) {
		return p, domain.Invalid("measure", fmt.Sprintf("unidad no soportada: %q", p.Measure))
	}
	return p, nil
}
