package gormdb

import (
	"errors"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/VitaminP8/yatube/internal/storage"
)

const pqUniqueViolation = "23505"

// isUniqueViolation распознает нарушение уникального индекса в обоих драйверах
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// translate приводит ошибки gorm к ошибкам пакета storage
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case gorm.IsRecordNotFoundError(err):
		return storage.ErrNotFound
	case isUniqueViolation(err):
		return storage.ErrDuplicate
	default:
		return err
	}
}
