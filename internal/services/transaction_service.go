package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gastos/internal/categorizer"
	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/pagination"
	"gastos/internal/validation"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db          *gorm.DB
	userService UserServicer
	categorizer *categorizer.Categorizer
}

// NewTransactionService creates a new TransactionServicer. A nil categorizer
// selects the built-in rule table.
func NewTransactionService(db *gorm.DB, userService UserServicer, c *categorizer.Categorizer) TransactionServicer {
	if c == nil {
		c = categorizer.Default()
	}
	return &transactionService{
		db:          db,
		userService: userService,
		categorizer: c,
	}
}

// entry is a validated description/amount pair with its derived classification.
type entry struct {
	description string
	amount      decimal.Decimal
	category    string
	txType      models.TransactionType
}

func (s *transactionService) prepare(description, amount string) (*entry, error) {
	desc, err := validation.Description(description)
	if err != nil {
		return nil, apperrors.FromValidation(err)
	}
	amt, err := validation.Amount(amount)
	if err != nil {
		return nil, apperrors.FromValidation(err)
	}

	result := s.categorizer.Categorize(desc)
	return &entry{
		description: desc,
		amount:      amt,
		category:    result.Category,
		txType:      models.TransactionType(result.Type),
	}, nil
}

// CreateTransaction records a new transaction for a user. Category and type
// are derived from the description.
func (s *transactionService) CreateTransaction(userID uint, description, amount string) (*models.Transaction, error) {
	e, err := s.prepare(description, amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.userService.GetUserByID(userID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Description: e.description,
		Amount:      e.amount,
		Category:    e.category,
		Type:        e.txType,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of a user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Order("id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	return findOwned(s.db, userID, transactionID)
}

func findOwned(db *gorm.DB, userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces description and amount and re-derives the
// category and type.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, description, amount string) (*models.Transaction, error) {
	e, err := s.prepare(description, amount)
	if err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", transactionID, userID).
			Updates(map[string]interface{}{
				"description": e.description,
				"amount":      e.amount,
				"category":    e.category,
				"type":        e.txType,
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTransactionNotFound
		}

		var findErr error
		updated, findErr = findOwned(tx, userID, transactionID)
		return findErr
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

type statsRow struct {
	Type     models.TransactionType
	Category string
	Count    int64
	Total    decimal.Decimal
}

// GetUserStats aggregates income, expenses and per-category expense totals.
// A user with no transactions gets zero totals and an empty breakdown.
func (s *transactionService) GetUserStats(userID uint) (*UserStats, error) {
	var rows []statsRow
	if err := s.db.Model(&models.Transaction{}).
		Select("type, category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("type, category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &UserStats{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    []CategoryTotal{},
	}
	for _, r := range rows {
		total := r.Total.Round(2)
		switch r.Type {
		case models.TransactionTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(total)
		case models.TransactionTypeExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(total)
			stats.ByCategory = append(stats.ByCategory, CategoryTotal{
				Category: r.Category,
				Count:    r.Count,
				Total:    total,
			})
		}
	}
	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)

	sort.Slice(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	return stats, nil
}
