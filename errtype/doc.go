// Package errtype 提供带类型标签（Kind）的错误。
//
// 通过 Type 创建某一类错误的构造函数，调用方可以用 errors.Is 或 Is 按类型区分错误，
// 而不需要匹配错误字符串：
//
//	var ErrRetryLimitReached = errtype.Type("RetryLimitReachedError")
//
//	err := ErrRetryLimitReached("retry limit reached", lastErr)
//	errtype.Is(err, "RetryLimitReachedError") // true
//
// 错误在创建时记录调用栈，使用 %+v 格式化时输出，格式与 github.com/pkg/errors 一致。
package errtype
