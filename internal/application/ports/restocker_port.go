package ports

import (
	"context"

	"github.com/jhoicas/restocker/internal/domain/entity"
)

// Session sesión explícita del usuario frente al backend de Restocker.
// Se pasa a cada llamada; no existe estado global de autenticación.
type Session struct {
	UserID string
	Token  string // bearer emitido por el backend
}

// Credentials datos de login / signup.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// NewStock alta de un lote.
type NewStock struct {
	ExpiryDate string // YYYY-MM-DD
	Qty        int
}

// UseStock consumo sobre un lote.
type UseStock struct {
	StockID string
	UsedQty int
}

// InStockListing listado "en stock" ya aplanado: cada lote lleva su ProductID.
type InStockListing struct {
	Batches  []entity.StockBatch
	Products []entity.Product
}

// ChatMessage mensaje para el asistente del backend.
type ChatMessage struct {
	Message   string
	ProductID string // opcional: contexto de producto
}

// AuthBackend puerto de salida para autenticación contra el backend.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Signup(ctx context.Context, in Credentials) (token string, err error)
	Me(ctx context.Context, token string) (*entity.User, error)
	Verify(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
}

// InventoryBackend puerto de salida para productos y lotes.
type InventoryBackend interface {
	ListProducts(ctx context.Context, s Session) ([]entity.Product, error)
	AddProduct(ctx context.Context, s Session, p entity.Product) error
	ListStock(ctx context.Context, s Session, productID string) ([]entity.StockBatch, error)
	AddStock(ctx context.Context, s Session, productID string, in NewStock) error
	UseStock(ctx context.Context, s Session, productID string, in UseStock) error
	InStock(ctx context.Context, s Session) (*InStockListing, error)
}

// ChatBackend puerto de salida para el asistente de chat.
type ChatBackend interface {
	Chat(ctx context.Context, s Session, msg ChatMessage) (reply string, err error)
}

// RestockerBackend agrupa todos los puertos; lo implementa el cliente REST.
type RestockerBackend interface {
	AuthBackend
	InventoryBackend
	ChatBackend
}
