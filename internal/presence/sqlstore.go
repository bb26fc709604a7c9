package presence

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"presence-analyzer/internal/platform/db"
)

const DefaultTable = "presences"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// MySQL のテーブルから読む。列は CSV と同じ4項目に揃えてから同じパーサを通す
type SQLLoader struct {
	conn  *sql.DB
	table string
	log   *zap.Logger
}

func NewSQLLoader(conn *sql.DB, table string, log *zap.Logger) (*SQLLoader, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid presence table name: %q", table)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLLoader{conn: conn, table: table, log: log}, nil
}

func (l *SQLLoader) Load(ctx context.Context) (*RecordStore, error) {
	query := fmt.Sprintf(`
	SELECT user_id,
		DATE_FORMAT(presence_date, '%%Y-%%m-%%d'),
		TIME_FORMAT(start_time, '%%H:%%i:%%s'),
		TIME_FORMAT(end_time, '%%H:%%i:%%s')
	FROM `+"`%s`"+`
	ORDER BY presence_id`, l.table)

	store := NewRecordStore()
	err := db.ReadOnly(ctx, l.conn, func(ctx context.Context, q db.Querier) error {
		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		n := 0
		for rows.Next() {
			n++
			var userID, date, start, end sql.NullString
			if err := rows.Scan(&userID, &date, &start, &end); err != nil {
				return err
			}
			// NULL は空文字になりパースで弾かれる
			row := presenceRow{UserID: userID.String, Date: date.String, Start: start.String, End: end.String}
			rec, err := row.toRecord()
			if err != nil {
				l.log.Debug("problem with row", zap.Int("row", n), zap.Error(err))
				continue
			}
			store.add(rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query presence table %s: %w", l.table, err)
	}
	l.log.Info("presence table loaded", zap.String("table", l.table), zap.Int("users", store.Len()))
	return store, nil
}
