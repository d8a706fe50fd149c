package dto

// ChatRequest mensaje para el asistente.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	ProductID string `json:"product_id,omitempty"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	Reply string `json:"reply"`
}
