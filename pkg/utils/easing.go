package utils

// 缓动函数
//
// 接受进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，用于飞溅淡出等渲染效果。
// 参考：https://easings.net/

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Progress 把剩余计数换算成已完成进度 ∈ [0, 1]
// total <= 0 时视为已完成
func Progress(remaining, total int) float64 {
	if total <= 0 {
		return 1
	}
	p := 1 - float64(remaining)/float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
