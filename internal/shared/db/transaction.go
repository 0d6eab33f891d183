// Package db carries the gorm transaction through context.Context so
// repositories join whatever transaction the use case opened.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor is the part of TransactionManager the application layer depends on.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

var _ Transactor = (*TransactionManager)(nil)

// RunInTransaction commits when fn returns nil and rolls back otherwise.
// When ctx already carries a transaction, fn joins it and the outermost call
// decides the outcome.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB bound to ctx.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
