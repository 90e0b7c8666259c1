// Package cli 实现 retrier 命令行：反复执行子命令直到成功、达到重试上限或超时。
package cli
