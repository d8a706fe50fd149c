// Package restapi implementa los puertos de salida contra el backend REST de Restocker.
// Cada endpoint tiene su esquema de respuesta tipado; una respuesta que no encaja
// es un error explícito (ErrMalformedResponse), no se adivina la forma.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/pkg/config"
	"github.com/jhoicas/restocker/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var _ ports.RestockerBackend = (*Client)(nil)

const maxBodyBytes = 2 << 20

// ErrMalformedResponse el backend respondió 2xx con un cuerpo fuera del esquema.
var ErrMalformedResponse = fmt.Errorf("%w: respuesta con formato inesperado", domain.ErrUpstream)

// APIError respuesta no-2xx del backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Message)
}

// Unwrap clasifica el error en las variantes de dominio.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return domain.ErrUpstream
	}
}

// Client cliente HTTP del backend. Sin reintentos: cada fallo es terminal para la petición.
type Client struct {
	apiBase    string
	authBase   string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con el timeout configurado.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	authBase := cfg.AuthBaseURL
	if authBase == "" {
		authBase = cfg.APIBaseURL
	}
	return &Client{
		apiBase:  strings.TrimRight(cfg.APIBaseURL, "/"),
		authBase: strings.TrimRight(authBase, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		log: log.Named("restapi"),
	}
}

// ── Esquemas del backend ──────────────────────────────────────────────────────

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	User *entity.User `json:"user"`
}

type stockGroup struct {
	ProductID   string              `json:"productId"`
	StockDetail []entity.StockBatch `json:"stockDetail"`
}

type inStockResponse struct {
	StockWithProducts []stockGroup `json:"stockWithProducts"`
	Product           *struct {
		AllProducts []entity.Product `json:"allProducts"`
	} `json:"product"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type addProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Measure     string `json:"measure"`
}

type addStockRequest struct {
	ExpiryDate string `json:"expiryDate"`
	Qty        int    `json:"qty"`
}

type useStockRequest struct {
	UsedQty int    `json:"usedQty"`
	StockID string `json:"stockId"`
}

type chatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, c.authURL("login"), "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w", ErrMalformedResponse)
	}
	return out.Token, nil
}

// Signup POST /api/auth/signup.
func (c *Client) Signup(ctx context.Context, in ports.Credentials) (string, error) {
	var out tokenResponse
	body := signupRequest{Name: in.Name, Email: in.Email, Password: in.Password}
	if err := c.do(ctx, http.MethodPost, c.authURL("signup"), "", body, &out); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("signup: %w", ErrMalformedResponse)
	}
	return out.Token, nil
}

// Me GET /api/auth/me.
func (c *Client) Me(ctx context.Context, token string) (*entity.User, error) {
	return c.user(ctx, "me", token)
}

// Verify GET /api/auth/verify.
func (c *Client) Verify(ctx context.Context, token string) (*entity.User, error) {
	return c.user(ctx, "verify", token)
}

func (c *Client) user(ctx context.Context, endpoint, token string) (*entity.User, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, c.authURL(endpoint), token, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	if out.User == nil || out.User.ID == "" {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrMalformedResponse)
	}
	return out.User, nil
}

// Logout POST /api/auth/logout.
func (c *Client) Logout(ctx context.Context, token string) error {
	if err := c.do(ctx, http.MethodPost, c.authURL("logout"), token, struct{}{}, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ── Productos y lotes ─────────────────────────────────────────────────────────

// ListProducts GET /{userId}/product.
func (c *Client) ListProducts(ctx context.Context, s ports.Session) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, http.MethodGet, c.userURL(s, "product"), s.Token, nil, &out); err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	if out == nil {
		out = []entity.Product{}
	}
	return out, nil
}

// AddProduct POST /{userId}/product/add.
func (c *Client) AddProduct(ctx context.Context, s ports.Session, p entity.Product) error {
	body := addProductRequest{Name: p.Name, Description: p.Description, Measure: p.Measure}
	if err := c.do(ctx, http.MethodPost, c.userURL(s, "product", "add"), s.Token, body, nil); err != nil {
		return fmt.Errorf("crear producto: %w", err)
	}
	return nil
}

// ListStock GET /{userId}/product/{productId}/stock.
func (c *Client) ListStock(ctx context.Context, s ports.Session, productID string) ([]entity.StockBatch, error) {
	var out []entity.StockBatch
	if err := c.do(ctx, http.MethodGet, c.userURL(s, "product", productID, "stock"), s.Token, nil, &out); err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	for i := range out {
		out[i].ProductID = productID
	}
	if out == nil {
		out = []entity.StockBatch{}
	}
	return out, nil
}

// AddStock POST /{userId}/product/{productId}/stock/add.
func (c *Client) AddStock(ctx context.Context, s ports.Session, productID string, in ports.NewStock) error {
	body := addStockRequest{ExpiryDate: in.ExpiryDate, Qty: in.Qty}
	if err := c.do(ctx, http.MethodPost, c.userURL(s, "product", productID, "stock", "add"), s.Token, body, nil); err != nil {
		return fmt.Errorf("agregar lote: %w", err)
	}
	return nil
}

// UseStock POST /{userId}/product/{productId}/stock/use.
func (c *Client) UseStock(ctx context.Context, s ports.Session, productID string, in ports.UseStock) error {
	body := useStockRequest{UsedQty: in.UsedQty, StockID: in.StockID}
	if err := c.do(ctx, http.MethodPost, c.userURL(s, "product", productID, "stock", "use"), s.Token, body, nil); err != nil {
		return fmt.Errorf("usar stock: %w", err)
	}
	return nil
}

// InStock GET /{userId}/instock, aplanado a una lista de lotes con ProductID.
func (c *Client) InStock(ctx context.Context, s ports.Session) (*ports.InStockListing, error) {
	var out inStockResponse
	if err := c.do(ctx, http.MethodGet, c.userURL(s, "instock"), s.Token, nil, &out); err != nil {
		return nil, fmt.Errorf("listar en stock: %w", err)
	}

	listing := &ports.InStockListing{
		Batches:  []entity.StockBatch{},
		Products: []entity.Product{},
	}
	for _, group := range out.StockWithProducts {
		for _, b := range group.StockDetail {
			b.ProductID = group.ProductID
			listing.Batches = append(listing.Batches, b)
		}
	}
	if out.Product != nil && out.Product.AllProducts != nil {
		listing.Products = out.Product.AllProducts
	}
	return listing, nil
}

// ── Chat ──────────────────────────────────────────────────────────────────────

// Chat POST /chat/ai.
func (c *Client) Chat(ctx context.Context, s ports.Session, msg ports.ChatMessage) (string, error) {
	var out chatResponse
	body := chatRequest{Message: msg.Message, UserID: s.UserID, ProductID: msg.ProductID}
	if err := c.do(ctx, http.MethodPost, c.apiBase+"/chat/ai", s.Token, body, &out); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	if out.Reply == "" {
		return "", fmt.Errorf("chat: %w", ErrMalformedResponse)
	}
	return out.Reply, nil
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

func (c *Client) authURL(endpoint string) string {
	return c.authBase + "/api/auth/" + endpoint
}

func (c *Client) userURL(s ports.Session, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.apiBase)
	b.WriteString("/")
	b.WriteString(url.PathEscape(s.UserID))
	for _, seg := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// do ejecuta la petición y decodifica out (si no es nil).
func (c *Client) do(ctx context.Context, method, endpoint, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("url", endpoint).Msg("backend no disponible")
		if ctx.Err() != nil {
			return fmt.Errorf("%w: timeout o cancelación: %w", domain.ErrUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUnavailable, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if jsonErr := json.Unmarshal(raw, &eb); jsonErr == nil {
			apiErr.Message = eb.Error
			if apiErr.Message == "" {
				apiErr.Message = eb.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
