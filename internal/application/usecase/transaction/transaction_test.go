package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

type fakeTransactionRepo struct {
	adapter.TransactionRepository
	items map[uuid.UUID]*entity.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{items: map[uuid.UUID]*entity.Transaction{}}
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	copied := *tx
	r.items[tx.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	tx, ok := r.items[id]
	if !ok || tx.UserID != userID {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	copied := *tx
	r.items[tx.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	if tx, ok := r.items[id]; !ok || tx.UserID != userID {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeCategoryRepo struct {
	adapter.CategoryRepository
	items map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.items[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

type change struct {
	before, after *entity.Transaction
}

type recordingTrigger struct {
	adapter.AlertTrigger
	changes []change
	err     error
}

func (r *recordingTrigger) TransactionChanged(_ context.Context, _ uuid.UUID, before, after *entity.Transaction) error {
	r.changes = append(r.changes, change{before: before, after: after})
	return r.err
}

func TestTransactionMutations_TriggerAlertEvaluation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	food := entity.NewCategory(userID, "Food", nil)
	categories := &fakeCategoryRepo{items: map[uuid.UUID]*entity.Category{food.ID: food}}
	repo := newFakeTransactionRepo()
	trigger := &recordingTrigger{}

	created, err := NewCreateTransactionUseCase(repo, categories, trigger).Execute(ctx, CreateTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionTypeExpense,
		CategoryID:  &food.ID,
		Amount:      decimal.NewFromInt(30),
		Description: "  market  ",
		Date:        time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Description != "market" {
		t.Errorf("expected trimmed description, got %q", created.Description)
	}
	if created.Category == nil || created.Category.Name != "Food" {
		t.Error("expected category on the created transaction")
	}

	_, err = NewUpdateTransactionUseCase(repo, categories, trigger).Execute(ctx, UpdateTransactionInput{
		UserID:        userID,
		TransactionID: created.ID,
		Type:          entity.TransactionTypeExpense,
		Amount:        decimal.NewFromInt(45),
		Date:          time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewDeleteTransactionUseCase(repo, trigger).Execute(ctx, userID, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trigger.changes) != 3 {
		t.Fatalf("expected 3 evaluations, got %d", len(trigger.changes))
	}

	createChange := trigger.changes[0]
	if createChange.before != nil || createChange.after == nil {
		t.Error("create should report only the new state")
	}

	// The update must carry the old period and category so they are re-evaluated too.
	updateChange := trigger.changes[1]
	if updateChange.before.Period() != (entity.Period{Month: 9, Year: 2026}) {
		t.Errorf("expected previous period 2026-09, got %s", updateChange.before.Period())
	}
	if updateChange.before.CategoryID == nil || *updateChange.before.CategoryID != food.ID {
		t.Error("expected previous category to be kept in the before state")
	}
	if updateChange.after.CategoryID != nil {
		t.Error("expected the category to be cleared")
	}

	deleteChange := trigger.changes[2]
	if deleteChange.before == nil || deleteChange.after != nil {
		t.Error("delete should report only the old state")
	}
}

func TestCreateTransaction_ForeignCategoryIsValidationError(t *testing.T) {
	other := entity.NewCategory(uuid.New(), "Other", nil)
	categories := &fakeCategoryRepo{items: map[uuid.UUID]*entity.Category{other.ID: other}}
	trigger := &recordingTrigger{}

	_, err := NewCreateTransactionUseCase(newFakeTransactionRepo(), categories, trigger).Execute(context.Background(), CreateTransactionInput{
		UserID:     uuid.New(),
		Type:       entity.TransactionTypeExpense,
		CategoryID: &other.ID,
		Amount:     decimal.NewFromInt(1),
		Date:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})

	var validationErr *domainerror.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := validationErr.Fields["category_id"]; !ok {
		t.Errorf("expected category_id field, got %v", validationErr.Fields)
	}
	if len(trigger.changes) != 0 {
		t.Error("no evaluation expected for a rejected transaction")
	}
}

func TestCreateTransaction_EvaluationFailureIsNotFatal(t *testing.T) {
	trigger := &recordingTrigger{err: errors.New("redis down")}

	created, err := NewCreateTransactionUseCase(newFakeTransactionRepo(), &fakeCategoryRepo{}, trigger).Execute(context.Background(), CreateTransactionInput{
		UserID: uuid.New(),
		Type:   entity.TransactionTypeIncome,
		Amount: decimal.NewFromInt(100),
		Date:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("alert failures must not fail the mutation, got %v", err)
	}
	if created == nil {
		t.Fatal("expected the transaction to be returned")
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	trigger := &recordingTrigger{}
	err := NewDeleteTransactionUseCase(newFakeTransactionRepo(), trigger).Execute(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if len(trigger.changes) != 0 {
		t.Error("no evaluation expected when nothing was deleted")
	}
}
