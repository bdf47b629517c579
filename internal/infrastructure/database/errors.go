package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// IsNoRows: QueryRow().Scan() không tìm thấy dòng nào
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation kiểm tra lỗi unique, constraint rỗng = bất kỳ constraint nào
func IsUniqueViolation(err error, constraint string) bool {
	return isViolation(err, CodeUniqueViolation, constraint)
}

// IsForeignKeyViolation kiểm tra lỗi FK, constraint rỗng = bất kỳ constraint nào
func IsForeignKeyViolation(err error, constraint string) bool {
	return isViolation(err, CodeForeignKeyViolation, constraint)
}

func isViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
