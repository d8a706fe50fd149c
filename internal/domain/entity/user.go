package entity

// User usuario autenticado en el backend de Restocker.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
