package service

import "math"

// ComputeQuizScore 由三个计数纯函数地计算 0-100 的得分，保留两位小数。
//
// correctTotal: 整份测验里标记为正确的候选答案总数
// correctSelected: 学生勾选中正确的个数
// incorrectSelected: 学生勾选中错误的个数
//
// 每个错选扣 0.1 绝对分，抑制全选猜题；下限为 0。
// correctTotal 为 0 的退化测验：什么都不选得 100，选了任何错项得 0。
func ComputeQuizScore(correctTotal, correctSelected, incorrectSelected int) float64 {
	if correctTotal == 0 {
		if incorrectSelected == 0 {
			return 100
		}
		return 0
	}

	raw := float64(correctSelected)/float64(correctTotal)*100 - float64(incorrectSelected)*0.1
	if raw < 0 {
		raw = 0
	}
	return math.Round(raw*100) / 100
}
