package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports/portstest"
	"github.com/jhoicas/restocker/internal/application/usecase"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
)

func TestValidateProduct(t *testing.T) {
	cases := []struct {
		name    string
		in      dto.CreateProductRequest
		wantErr bool
		measure string
	}{
		{"medida por defecto", dto.CreateProductRequest{Name: "Arroz"}, false, entity.DefaultMeasure},
		{"medida en mayúsculas", dto.CreateProductRequest{Name: "Leche", Measure: "ML"}, false, entity.MeasureML},
		{"sin nombre", dto.CreateProductRequest{Name: "   "}, true, ""},
		{"medida desconocida", dto.CreateProductRequest{Name: "Sal", Measure: "ton"}, true, ""},
		{"descripción de 20", dto.CreateProductRequest{Name: "Sal", Description: strings.Repeat("a", 20)}, false, entity.DefaultMeasure},
		{"descripción de 21", dto.CreateProductRequest{Name: "Sal", Description: strings.Repeat("a", 21)}, true, ""},
		{"20 caracteres multibyte", dto.CreateProductRequest{Name: "Sal", Description: strings.Repeat("ñ", 20)}, false, entity.DefaultMeasure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := usecase.ValidateProduct(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.measure, p.Measure)
		})
	}
}

func TestProductUseCase_CreateYList(t *testing.T) {
	be := portstest.New()
	s := be.AddUser("u1", "Ana", "ana@example.com", "secret")
	uc := usecase.NewProductUseCase(be)
	ctx := context.Background()

	_, err := uc.Create(ctx, s, dto.CreateProductRequest{Name: " Queso ", Description: "fresco", Measure: "g"})
	require.NoError(t, err)

	list, err := uc.List(ctx, s)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Queso", list.Items[0].Name)
	assert.Equal(t, "g", list.Items[0].Measure)
	assert.Equal(t, entity.Measures, list.Measures)
}

func TestChatUseCase(t *testing.T) {
	be := portstest.New()
	s := be.AddUser("u1", "Ana", "ana@example.com", "secret")
	be.Reply = "hola"
	uc := usecase.NewChatUseCase(be, time.Second)

	out, err := uc.Send(context.Background(), s, dto.ChatRequest{Message: " ¿cuánto arroz queda? "})
	require.NoError(t, err)
	assert.Equal(t, "hola", out.Reply)
	assert.Equal(t, "¿cuánto arroz queda?", be.LastChat.Message)

	_, err = uc.Send(context.Background(), s, dto.ChatRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, be.Count("Chat"))
}
