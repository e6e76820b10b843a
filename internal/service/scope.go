package service

import (
	"context"

	"gorm.io/gorm"
)

type scopeKey int

const (
	currentUserKey scopeKey = iota
	txKey
)

// WithCurrentUser 将已认证的用户 ID 绑定到请求上下文
func WithCurrentUser(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, currentUserKey, userID)
}

// CurrentUserID 返回请求上下文中的用户 ID
func CurrentUserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(currentUserKey).(uint)
	return id, ok && id != 0
}

// conn 返回当前上下文应使用的连接：已处于事务中时复用事务句柄。
func conn(ctx context.Context, gdb *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return gdb.WithContext(ctx)
}

// runInTx 在事务中执行 fn。嵌套调用会加入外层事务，
// 因此一个服务方法可以在另一个服务的事务里被安全调用。
func runInTx(ctx context.Context, gdb *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx, tx)
	}
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx), tx)
	})
}
