package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gastos/internal/credential"
	"gastos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	cred, err := credential.NewCredential(username, TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     cred.Username,
		PasswordHash: cred.PasswordHash,
		PasswordSalt: cred.PasswordSalt,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction inserts a transaction directly, bypassing
// categorization. amount is a decimal string such as "12.50".
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, category, amount string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Type:        txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
