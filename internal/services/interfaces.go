package services

import (
	"github.com/shopspring/decimal"

	"gastos/internal/models"
	"gastos/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Category *string
}

// CategoryTotal aggregates the expense transactions of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// UserStats summarizes every transaction of a user.
type UserStats struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
	ByCategory    []CategoryTotal `json:"by_category"`
}

// TransactionServicer defines the contract for transaction-related business logic.
// Description and amount are raw caller input; they are validated and
// normalized before anything is stored.
type TransactionServicer interface {
	CreateTransaction(userID uint, description, amount string) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, description, amount string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	GetUserStats(userID uint) (*UserStats, error)
}
