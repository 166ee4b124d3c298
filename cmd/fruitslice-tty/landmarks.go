package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/utils"
)

// landmark 手部追踪器给出的一帧食指指尖位置（归一化坐标）
// 未检测到手时两个分量都是 NaN
type landmark struct {
	nx, ny float64
}

var noHand = landmark{nx: math.NaN(), ny: math.NaN()}

// parseLandmark 解析追踪器输出的一行
//
// 格式为 "nx ny"，空行或 "-" 表示本帧没有检测到手。
func parseLandmark(line string) (landmark, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "-") {
		return noHand, nil
	}
	if len(fields) != 2 {
		return noHand, fmt.Errorf("expected \"nx ny\", got %q", line)
	}

	nx, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return noHand, fmt.Errorf("invalid nx: %w", err)
	}
	ny, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return noHand, fmt.Errorf("invalid ny: %w", err)
	}
	return landmark{nx: nx, ny: ny}, nil
}

// readLandmarks 逐行读取追踪器输出，读到结尾后关闭 out
// 无法解析的行记录日志后跳过
func readLandmarks(r io.Reader, out chan<- landmark) {
	defer close(out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lm, err := parseLandmark(scanner.Text())
		if err != nil {
			log.Printf("[Landmarks] Skipping line: %v", err)
			continue
		}
		out <- lm
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[Landmarks] Read failed: %v", err)
	}
}

// cursor 按游戏区域尺寸换算成光标
func (lm landmark) cursor(area components.PlayArea, mirror bool) components.Cursor {
	return utils.LandmarkToCursor(lm.nx, lm.ny, area.Width, area.Height, mirror)
}
