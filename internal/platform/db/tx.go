package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier: 在席テーブルの読み出しに使う分だけ
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ReadOnly: 読み取り専用・REPEATABLE READ の Tx で fn を実行する。
// 書き込みは無いので終了時は常に ROLLBACK
func ReadOnly(ctx context.Context, conn *sql.DB, fn func(ctx context.Context, q Querier) error) error {
	tx, err := conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("読み取りTxの開始に失敗: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return fn(ctx, tx)
}
