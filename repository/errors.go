package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDuplicate signals a unique-constraint violation. The storage layer's
// constraint is the source of truth for every uniqueness invariant; callers
// translate this into a Conflict.
var ErrDuplicate = errors.New("duplicate row violates unique constraint")

// mysqlDuplicateEntry is the MySQL error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// translateError maps driver-level unique-constraint failures to
// ErrDuplicate and passes everything else through.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
