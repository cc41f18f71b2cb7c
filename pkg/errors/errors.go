package errors

import "errors"

// ErrCacheMiss 缓存未命中（或缓存不可用）
var ErrCacheMiss = errors.New("缓存未命中")
