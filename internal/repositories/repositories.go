package repositories

import "database/sql"

// Execer lets write queries run on either *sql.DB or *sql.Tx, so the booking
// status transition can pair its two writes in one transaction.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
