package model

import (
	"fmt"

	"gorm.io/gorm"
)

// unreadAlertIndex enforces at most one unread alert per correlation key.
const unreadAlertIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_alerts_unread_key
	ON alerts (user_id, type, correlation_key) WHERE is_read = false`

// All returns every model managed by the schema, in creation order.
func All() []any {
	return []any{
		&UserModel{},
		&SessionModel{},
		&CategoryModel{},
		&TransactionModel{},
		&MonthlyBudgetModel{},
		&DebtModel{},
		&SavingGoalModel{},
		&SavingDepositModel{},
		&AlertModel{},
		&EmailQueueModel{},
	}
}

// Migrate creates or updates the schema, including indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	if err := db.Exec(unreadAlertIndex).Error; err != nil {
		return fmt.Errorf("failed to create unread alert index: %w", err)
	}
	return nil
}
