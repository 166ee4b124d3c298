package config

import (
	"fmt"
	"log"

	"github.com/decker502/fruitslice/pkg/embedded"
)

// Load 加载玩法配置
//
// path 为空时使用嵌入的默认配置（data/fruit_slice.yaml），
// 否则从磁盘读取，缺失的键沿用默认值。
func Load(path string) (*GameConfig, error) {
	if path == "" {
		data, err := embedded.ReadFile(embedded.DefaultConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded game config: %w", err)
		}
		log.Printf("[Config] 使用内置配置: %s", embedded.DefaultConfigPath)
		return ParseGameConfig(data)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] 加载配置文件: %s", path)
	return cfg, nil
}
