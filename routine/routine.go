package routine

// Call 同步执行 fn 并返回其结果。
//
// 如果 fn 发生 panic，panic 不会向上传播，而是转换为 *RecoveredError 作为错误返回，
// 错误中包含 panic 发生时的调用栈。
//
// 示例：
//
//	v, err := routine.Call(func() (int, error) {
//	    return parse(input) // 可能 panic
//	})
func Call[T any](fn func() (T, error)) (val T, err error) {
	defer Recover(func(r interface{}) {
		var zero T
		val = zero
		// skip NewRecovered, this closure, Recover and runtime.gopanic
		err = NewRecovered(4, r).AsError()
	})

	return fn()
}
