// Package portstest ofrece un backend en memoria que implementa
// ports.RestockerBackend para los tests de casos de uso y handlers.
package portstest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
)

var _ ports.RestockerBackend = (*Backend)(nil)

type account struct {
	password string
	user     entity.User
}

// Backend backend falso. Los errores de Errs se devuelven por nombre de método
// ("Login", "ListStock", ...); Calls cuenta las invocaciones.
type Backend struct {
	mu       sync.Mutex
	accounts map[string]account // por email
	tokens   map[string]string  // token → email
	products map[string][]entity.Product
	batches  map[string][]entity.StockBatch // por userID, en orden de alta
	seq      int

	Errs  map[string]error
	Calls map[string]int
	Reply string
	Now   func() time.Time
	// LastChat último mensaje recibido por Chat.
	LastChat ports.ChatMessage
}

// New crea un backend vacío.
func New() *Backend {
	return &Backend{
		accounts: map[string]account{},
		tokens:   map[string]string{},
		products: map[string][]entity.Product{},
		batches:  map[string][]entity.StockBatch{},
		Errs:     map[string]error{},
		Calls:    map[string]int{},
		Reply:    "ok",
		Now:      time.Now,
	}
}

// AddUser registra una cuenta y devuelve la sesión ya abierta.
func (b *Backend) AddUser(id, name, email, password string) ports.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = account{password: password, user: entity.User{ID: id, Name: name, Email: email}}
	token := "backend-" + id
	b.tokens[token] = email
	return ports.Session{UserID: id, Token: token}
}

// SeedProduct agrega un producto con ID fijo.
func (b *Backend) SeedProduct(userID string, p entity.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[userID] = append(b.products[userID], p)
}

// SeedBatch agrega un lote con ID fijo (ProductID obligatorio).
func (b *Backend) SeedBatch(userID string, batch entity.StockBatch) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.batches[userID] = append(b.batches[userID], batch)
}

// Count número de llamadas a un método.
func (b *Backend) Count(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Calls[method]
}

func (b *Backend) enter(method string) error {
	b.Calls[method]++
	return b.Errs[method]
}

func (b *Backend) authorize(s ports.Session) error {
	email, ok := b.tokens[s.Token]
	if !ok || b.accounts[email].user.ID != s.UserID {
		return domain.ErrUnauthorized
	}
	return nil
}

func (b *Backend) Login(_ context.Context, email, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Login"); err != nil {
		return "", err
	}
	acc, ok := b.accounts[email]
	if !ok || acc.password != password {
		return "", domain.ErrUnauthorized
	}
	token := "backend-" + acc.user.ID
	b.tokens[token] = email
	return token, nil
}

func (b *Backend) Signup(_ context.Context, in ports.Credentials) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Signup"); err != nil {
		return "", err
	}
	if _, exists := b.accounts[in.Email]; exists {
		return "", fmt.Errorf("%w: el email ya existe", domain.ErrInvalidInput)
	}
	b.seq++
	id := fmt.Sprintf("u%d", b.seq)
	b.accounts[in.Email] = account{password: in.Password, user: entity.User{ID: id, Name: in.Name, Email: in.Email}}
	token := "backend-" + id
	b.tokens[token] = in.Email
	return token, nil
}

func (b *Backend) Me(_ context.Context, token string) (*entity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Me"); err != nil {
		return nil, err
	}
	return b.userFor(token)
}

func (b *Backend) Verify(_ context.Context, token string) (*entity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Verify"); err != nil {
		return nil, err
	}
	return b.userFor(token)
}

func (b *Backend) userFor(token string) (*entity.User, error) {
	email, ok := b.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	u := b.accounts[email].user
	return &u, nil
}

func (b *Backend) Logout(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Logout"); err != nil {
		return err
	}
	delete(b.tokens, token)
	return nil
}

func (b *Backend) ListProducts(_ context.Context, s ports.Session) ([]entity.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListProducts"); err != nil {
		return nil, err
	}
	if err := b.authorize(s); err != nil {
		return nil, err
	}
	return append([]entity.Product{}, b.products[s.UserID]...), nil
}

func (b *Backend) AddProduct(_ context.Context, s ports.Session, p entity.Product) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("AddProduct"); err != nil {
		return err
	}
	if err := b.authorize(s); err != nil {
		return err
	}
	b.seq++
	p.ID = fmt.Sprintf("p%d", b.seq)
	b.products[s.UserID] = append(b.products[s.UserID], p)
	return nil
}

func (b *Backend) ListStock(_ context.Context, s ports.Session, productID string) ([]entity.StockBatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("ListStock"); err != nil {
		return nil, err
	}
	if err := b.authorize(s); err != nil {
		return nil, err
	}
	out := []entity.StockBatch{}
	for _, batch := range b.batches[s.UserID] {
		if batch.ProductID == productID {
			out = append(out, copyBatch(batch))
		}
	}
	return out, nil
}

func (b *Backend) AddStock(_ context.Context, s ports.Session, productID string, in ports.NewStock) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("AddStock"); err != nil {
		return err
	}
	if err := b.authorize(s); err != nil {
		return err
	}
	b.seq++
	now := b.Now()
	b.batches[s.UserID] = append(b.batches[s.UserID], entity.StockBatch{
		ID:         fmt.Sprintf("s%d", b.seq),
		ProductID:  productID,
		ExpiryDate: entity.ParseDate(in.ExpiryDate),
		Qty:        in.Qty,
		Entries:    []entity.StockEntry{{Type: entity.EntryTypeAdd, UsedQty: in.Qty, Time: entity.NewDate(now)}},
	})
	return nil
}

func (b *Backend) UseStock(_ context.Context, s ports.Session, productID string, in ports.UseStock) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("UseStock"); err != nil {
		return err
	}
	if err := b.authorize(s); err != nil {
		return err
	}
	list := b.batches[s.UserID]
	for i := range list {
		if list[i].ID == in.StockID && list[i].ProductID == productID {
			if in.UsedQty > list[i].Qty {
				return domain.ErrInsufficientStock
			}
			list[i].Qty -= in.UsedQty
			list[i].Entries = append(list[i].Entries, entity.StockEntry{
				Type: entity.EntryTypeSub, UsedQty: in.UsedQty, Time: entity.NewDate(b.Now()),
			})
			return nil
		}
	}
	return domain.ErrNotFound
}

func (b *Backend) InStock(_ context.Context, s ports.Session) (*ports.InStockListing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("InStock"); err != nil {
		return nil, err
	}
	if err := b.authorize(s); err != nil {
		return nil, err
	}
	out := &ports.InStockListing{Batches: []entity.StockBatch{}, Products: append([]entity.Product{}, b.products[s.UserID]...)}
	for _, batch := range b.batches[s.UserID] {
		if batch.Qty > 0 {
			out.Batches = append(out.Batches, copyBatch(batch))
		}
	}
	return out, nil
}

func (b *Backend) Chat(_ context.Context, s ports.Session, msg ports.ChatMessage) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Chat"); err != nil {
		return "", err
	}
	if err := b.authorize(s); err != nil {
		return "", err
	}
	b.LastChat = msg
	return b.Reply, nil
}

func copyBatch(batch entity.StockBatch) entity.StockBatch {
	batch.Entries = append([]entity.StockEntry(nil), batch.Entries...)
	return batch
}
