package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"gastos/internal/models"
	"gastos/internal/pagination"
	"gastos/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest is the payload for creating or updating a transaction.
// user_id and amount accept JSON numbers or numeric strings.
type TransactionRequest struct {
	UserID      json.Number `json:"user_id" swaggertype:"integer" example:"1"`
	Description string      `json:"description" example:"Cena en restaurant"`
	Amount      json.Number `json:"amount" swaggertype:"number" example:"45.50"`
}

// DeleteTransactionRequest is the optional body of a delete request.
type DeleteTransactionRequest struct {
	UserID json.Number `json:"user_id" swaggertype:"integer" example:"1"`
}

// ListTransactionsQuery holds the filters accepted when listing transactions.
type ListTransactionsQuery struct {
	UserID   string `form:"user_id"`
	Type     string `form:"type" binding:"omitempty,transaction_type"`
	Category string `form:"category" binding:"max=50"`
}

// TransactionEnvelope wraps a single transaction in a response.
type TransactionEnvelope struct {
	Transaction models.Transaction `json:"transaction"`
}

// TransactionPage is a page of transactions.
type TransactionPage pagination.PageResponse[models.Transaction]

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction; category and type are derived from the description
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionEnvelope "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	userID, err := parseUserID(numberText(req.UserID))
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, req.Description, numberText(req.Amount))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetUserTransactions lists a user's transactions, newest first
// @Summary     List transactions
// @Description Paginated list of the user's transactions, optionally filtered by type and category
// @Tags        transactions
// @Produce     json
// @Param       user_id   query int    true  "Owner user ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       type      query string false "income or expense"
// @Param       category  query string false "Category label"
// @Success     200 {object} TransactionPage
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	userID, err := parseUserID(query.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var filter services.TransactionFilter
	if query.Type != "" {
		txType := models.TransactionType(query.Type)
		filter.Type = &txType
	}
	if query.Category != "" {
		category := query.Category
		filter.Category = &category
	}

	result, err := h.transactionService.GetUserTransactions(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns one transaction owned by the user
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id      path  int true "Transaction ID"
// @Param       user_id query int true "Owner user ID"
// @Success     200 {object} TransactionEnvelope
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := queryUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction replaces description and amount of a transaction
// @Summary     Update a transaction
// @Description Replace description and amount; category and type are derived again
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path int                true "Transaction ID"
// @Param       request body TransactionRequest true "New transaction details"
// @Success     200 {object} TransactionEnvelope "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	userID, err := parseUserID(numberText(req.UserID))
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, req.Description, numberText(req.Amount))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles the deletion of a transaction
// @Summary     Delete a transaction
// @Description The owner is taken from the user_id query parameter, or from the JSON body when absent
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path  int                      true  "Transaction ID"
// @Param       user_id query int                      false "Owner user ID"
// @Param       request body  DeleteTransactionRequest false "Owner user ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	raw := c.Query("user_id")
	if raw == "" {
		var req DeleteTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondWithError(c, bindError(err))
			return
		}
		raw = numberText(req.UserID)
	}

	userID, err := parseUserID(raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

// GetStats returns aggregate income and expense figures for a user
// @Summary     User statistics
// @Description Total income, total expenses, balance and expense totals per category
// @Tags        stats
// @Produce     json
// @Param       user_id query int true "Owner user ID"
// @Success     200 {object} services.UserStats
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats [get]
func (h *TransactionHandler) GetStats(c *gin.Context) {
	userID, err := queryUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.transactionService.GetUserStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
