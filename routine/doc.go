// Package routine 提供 panic 恢复工具。
//
// 主要功能：
//   - Call: 同步执行函数，并将 panic 转换为错误返回
//   - Recover: panic 恢复，依次调用清理函数
//   - Recovered/RecoveredError: 保存 panic 值与调用栈
//
// 使用场景：
//   - 重试执行器需要把“抛出”的 panic 与普通错误同等对待时，使用 Call 包装被重试的函数
package routine
