package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Omit("Category").Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction with its category, scoped to userID.
func (r *transactionRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Update updates an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Omit("Category").Save(model.TransactionFromEntity(transaction)).Error
}

// Delete removes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// List returns a page of transactions ordered by date and creation time, newest first.
func (r *transactionRepository) List(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter, page adapter.Pagination) (*adapter.TransactionPage, error) {
	query := r.filtered(ctx, userID, filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset((page.Page - 1) * page.PerPage).
		Limit(page.PerPage).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return &adapter.TransactionPage{Transactions: transactions, Total: total}, nil
}

// Summarize returns income and expense totals over the filtered set.
func (r *transactionRepository) Summarize(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) (*entity.TransactionSummary, error) {
	var row struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
	}
	err := r.filtered(ctx, userID, filter).
		Select(`
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) as total_income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) as total_expense
		`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.TransactionSummary{
		TotalIncome:  row.TotalIncome.Round(2),
		TotalExpense: row.TotalExpense.Round(2),
	}, nil
}

// SumExpenses sums expense amounts in a period, optionally restricted to one category.
func (r *transactionRepository) SumExpenses(ctx context.Context, userID uuid.UUID, period entity.Period, categoryID *uuid.UUID) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Where("user_id = ? AND type = ?", userID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date < ?", period.Start(), period.End())
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) as total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}

// ExpensesByCategory groups categorized expenses of a period by category, largest first.
func (r *transactionRepository) ExpensesByCategory(ctx context.Context, userID uuid.UUID, period entity.Period) ([]*entity.CategoryTotal, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.TransactionModel{}).
		Select("category_id, COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND type = ? AND category_id IS NOT NULL", userID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date < ?", period.Start(), period.End()).
		Group("category_id").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*entity.CategoryTotal{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.CategoryID
	}
	var categoryModels []model.CategoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Category, len(categoryModels))
	for _, cm := range categoryModels {
		byID[cm.ID] = cm.ToEntity()
	}

	totals := make([]*entity.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		category, ok := byID[row.CategoryID]
		if !ok {
			continue
		}
		totals = append(totals, &entity.CategoryTotal{Category: category, Total: row.Total.Round(2)})
	}
	return totals, nil
}

// filtered builds the user-scoped query shared by List and Summarize.
func (r *transactionRepository) filtered(ctx context.Context, userID uuid.UUID, filter entity.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)

	switch {
	case filter.Year != nil && filter.Month != nil:
		period := entity.Period{Month: *filter.Month, Year: *filter.Year}
		query = query.Where("date >= ? AND date < ?", period.Start(), period.End())
	case filter.Year != nil:
		start := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	return query
}
