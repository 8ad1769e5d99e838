package oplogs

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, l *models.OperationLog) error {
	if l.OperatedAt.IsZero() {
		l.OperatedAt = time.Now().UTC()
	}
	query := `INSERT INTO operation_logs (id, operation, file_name, operator, operated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.Operation, l.FileName, l.Operator, l.OperatedAt)
	if err != nil {
		return fmt.Errorf("failed to append operation log: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.OperationLog, error) {
	query := `SELECT id, operation, file_name, operator, operated_at FROM operation_logs ORDER BY operated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select operation logs: %w", err)
	}
	defer rows.Close()

	var result []models.OperationLog
	for rows.Next() {
		var l models.OperationLog
		if err := rows.Scan(&l.ID, &l.Operation, &l.FileName, &l.Operator, &l.OperatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
