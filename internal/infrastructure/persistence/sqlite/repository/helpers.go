package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"gumshoe/internal/ports"
)

// dbFromContext prefers the transaction placed in context by the unit of
// work over the repository's own handle.
func dbFromContext(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// escapeLike protects literal % and _ in substring search terms; pair with
// ESCAPE '\' in the LIKE clause.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
