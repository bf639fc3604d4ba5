package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// TransactionRequest is the body of transaction create and update.
type TransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	Amount      float64 `json:"amount" binding:"required,gte=0.01"`
	Description string  `json:"description" binding:"max=1000"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
}

// Category returns the parsed category id, nil when absent.
func (r TransactionRequest) Category() *uuid.UUID {
	return parseOptionalUUID(r.CategoryID)
}

// ListTransactionsQuery holds the listing filters.
type ListTransactionsQuery struct {
	Month      *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       *int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Type       *string `form:"type" binding:"omitempty,oneof=income expense"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid"`
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PerPage    int     `form:"per_page" binding:"omitempty,min=1"`
}

// Filter converts the query into a repository filter.
func (q ListTransactionsQuery) Filter() entity.TransactionFilter {
	f := entity.TransactionFilter{Month: q.Month, Year: q.Year}
	if q.Type != nil {
		t := entity.TransactionType(*q.Type)
		f.Type = &t
	}
	f.CategoryID = parseOptionalUUID(q.CategoryID)
	return f
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	CategoryID  *string           `json:"category_id"`
	Category    *CategoryResponse `json:"category"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// PaginationResponse describes the current page of a listing.
type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// TransactionSummaryResponse holds totals over the filtered set.
type TransactionSummaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
}

// TransactionListResponse is the body of GET /transactions.
type TransactionListResponse struct {
	Success    bool                       `json:"success"`
	Data       []TransactionResponse      `json:"data"`
	Pagination PaginationResponse         `json:"pagination"`
	Summary    TransactionSummaryResponse `json:"summary"`
}

// ToTransactionResponse converts a domain Transaction entity.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		Amount:      Money(t.Amount),
		Description: t.Description,
		Date:        Date(t.Date),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		resp.CategoryID = &id
	}
	if t.Category != nil {
		c := ToCategoryResponse(t.Category)
		resp.Category = &c
	}
	return resp
}

// ToTransactionListResponse converts a listing page.
func ToTransactionListResponse(out *transaction.ListTransactionsOutput) TransactionListResponse {
	data := make([]TransactionResponse, 0, len(out.Transactions))
	for _, t := range out.Transactions {
		data = append(data, ToTransactionResponse(t))
	}
	return TransactionListResponse{
		Success: true,
		Data:    data,
		Pagination: PaginationResponse{
			CurrentPage: out.Page,
			LastPage:    out.LastPage,
			PerPage:     out.PerPage,
			Total:       out.Total,
		},
		Summary: TransactionSummaryResponse{
			TotalIncome:  Money(out.Summary.TotalIncome),
			TotalExpense: Money(out.Summary.TotalExpense),
			Balance:      Money(out.Summary.Balance()),
		},
	}
}
