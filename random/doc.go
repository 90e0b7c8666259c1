// Package random 提供可复现的伪随机数生成器。
//
// 给定相同的种子，Generator 总是产生相同的 [0, 1) 浮点序列，便于在测试中固定抖动（jitter）值；
// 字符串可以通过 HashToSeed 转换为种子，因此可以使用可读的字符串作为种子：
//
//	g := random.NewFromString("TOAD STROGANOFF1")
//	n := g.IntBetween(0, 50) // 24
//
// 注意：本包不适用于任何安全相关的场景。
package random
