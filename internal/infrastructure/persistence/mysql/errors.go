package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"rewards-server/internal/domain/transaction"
)

// MySQLのエラー番号
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// translateError MySQL固有のエラーをドメインエラーに変換する
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrLockWaitTimeout:
			return transaction.ErrStoreTimeout
		case mysqlErrDeadlock:
			return transaction.ErrStoreConflict
		}
	}
	return err
}
