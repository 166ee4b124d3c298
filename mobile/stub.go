//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 桌面端构建时 mobile.go 不参与编译，这里只保留导出的 Dummy。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
