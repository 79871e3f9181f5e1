package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an API user allowed to obtain tokens.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationMessages maps "<field>.<tag>" pairs to client messages.
func (User) ValidationMessages() map[string]string {
	return map[string]string{
		"username.required": "Por favor, informe o nome de usuário.",
		"username.min":      "Por favor, informe o nome de usuário de 3 a 100 caracteres.",
		"username.max":      "Por favor, informe o nome de usuário de 3 a 100 caracteres.",
		"email.required":    "Por favor, informe o email.",
		"email.email":       "Por favor, informe um email válido.",
		"password.required": "Por favor, informe a senha.",
		"password.min":      "Por favor, informe uma senha com pelo menos 6 caracteres.",
	}
}
