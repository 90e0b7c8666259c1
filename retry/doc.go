// Package retry 提供了一个可配置的重试执行器，支持重试次数上限、全局超时、指数退避与随机抖动。
//
// 基本用法：
//
//	result, err := retry.Do(ctx, func() (string, error) {
//	    return apiCall()
//	})
//
// 配置选项：
//
//	result, err := retry.Do(ctx, f,
//	    retry.WithMaxRetryCount(5),
//	    retry.WithRetryDelay(100*time.Millisecond),
//	    retry.WithBackoff(true),
//	    retry.WithMaxRetryDelay(time.Second),
//	    retry.WithJitter(0, 50*time.Millisecond),
//	)
//
// 每次失败后依次检查：
//   - OnError 钩子：返回 true 时立即结束，返回零值且没有错误
//   - ShouldRetry 钩子：返回 false 时立即结束，原样返回操作的错误
//   - 重试次数上限：返回 KindRetryLimitReached 类型的错误
//   - 全局超时（从第一次尝试开始计时）：返回 KindTimeout 类型的错误
//
// 然后计算等待时间：
//
//	base  = backoff ? factor^attempt * (minRetryDelay 或 retryDelay) : retryDelay
//	delay = clamp(base + jitter, minRetryDelay, maxRetryDelay)
//
// 其中 attempt 为已经失败的次数（从 1 开始），因此第一次重试就已经乘以 factor。
//
// Context 取消时，正在进行的等待会立即结束，并返回 KindCanceled 类型的错误。
//
// 支持的退避策略（通过 WithRetryStrategy 替换基础等待时间）：
//   - FixedBackoff: 固定间隔重试
//   - LinearBackoff: 线性增长间隔
//   - ExponentialBackoff: 指数退避
package retry
