package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/decker502/fruitslice/pkg/app"
)

var (
	configPath = flag.String("config", "", "玩法配置文件路径（为空使用内置配置）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	verbose    = flag.Bool("verbose", false, "启用详细日志输出")
	fullscreen = flag.Bool("fullscreen", false, "全屏启动")
	mute       = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       s,
		Mute:       *mute,
	})
	if err != nil {
		// 非 verbose 模式下 log 已被丢弃，错误直接写 stderr
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(a, "Fruit Slice", *fullscreen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
