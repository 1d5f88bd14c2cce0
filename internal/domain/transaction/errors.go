package transaction

import "errors"

var (
	// ErrStoreTimeout 行ロックの取得待ちがタイムアウトした
	// 呼び出し側ではサービス一時不可（リトライ可能）として扱う
	ErrStoreTimeout = errors.New("store lock wait timeout")
	// ErrStoreConflict トランザクションがデッドロック等で強制中断された
	ErrStoreConflict = errors.New("store transaction conflict")
)
