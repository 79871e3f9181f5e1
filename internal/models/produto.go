package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto represents a product row in tb_produto.
type Produto struct {
	ID         uuid.UUID       `json:"id" gorm:"primaryKey;column:id;type:varchar(36)"`
	Nome       string          `json:"nome" gorm:"column:nome;type:varchar(150);not null"`
	Preco      decimal.Decimal `json:"preco" gorm:"column:preco;type:decimal(10,2);not null"`
	Quantidade int             `json:"quantidade" gorm:"column:quantidade;not null"`
}

// TableName keeps the table name independent of GORM's pluralization rules.
func (Produto) TableName() string {
	return "tb_produto"
}
