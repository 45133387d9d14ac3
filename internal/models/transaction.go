package models

import "github.com/shopspring/decimal"

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents an income or expense entry owned by a user.
// Category and Type are derived from Description whenever it is written.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string          `gorm:"size:50;not null;index" json:"category"`
	Type        TransactionType `gorm:"size:10;not null;default:expense;index" json:"type"`
}
