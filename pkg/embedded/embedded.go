// Package embedded 提供嵌入资源的统一访问接口
//
// 默认配置文件随二进制一起分发，桌面端和终端端共用同一份数据。
// 路径统一以 "data/" 开头，与仓库内的目录结构一致。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultConfigPath 默认玩法配置在嵌入文件系统中的路径
const DefaultConfigPath = "data/fruit_slice.yaml"

//go:embed data
var dataFS embed.FS

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}
