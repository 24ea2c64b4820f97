package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlErrDupEntry is the MySQL server error for a unique key violation.
const mysqlErrDupEntry = 1062

// IsDuplicateKey reports whether err is a unique constraint violation from
// any of the supported drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDupEntry
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
