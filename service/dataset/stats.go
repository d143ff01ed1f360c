/*
 * @module service/dataset/stats
 * @description 列统计工具，提供均值、中位数、众数、分位数、标准差和Tukey围栏计算
 * @architecture 工具函数模式，无状态纯函数集合
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 无状态计算：列单元格 -> 统计量
 * @rules 所有统计量只基于非缺失单元格计算
 * @dependencies github.com/spf13/cast
 * @refs service/dataset/detector, service/dataset/cleaner
 */

package dataset

import (
	"math"
	"sort"

	"datacleaner-service/service/models"

	"github.com/spf13/cast"
)

// numericValues 提取列中所有非缺失单元格的数值，保持行顺序
func numericValues(col *models.Column) []float64 {
	values := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		v, err := cast.ToFloat64E(cell.Value)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// missingCount 统计列中缺失单元格数量
func missingCount(col *models.Column) int {
	count := 0
	for _, cell := range col.Cells {
		if cell.Missing {
			count++
		}
	}
	return count
}

// mean 算术均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median 中位数，偶数个取下中位数，保证填充值落在观测值域内
func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}

// sampleStdDev 样本标准差（n-1），少于两个值返回0
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// quantile 分位数，排序后按线性插值取值，q取值[0,1]
func quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// tukeyFences 计算Tukey围栏 [Q1-1.5*IQR, Q3+1.5*IQR]
func tukeyFences(values []float64) (lower, upper float64) {
	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// modeValue 众数，按首次出现顺序断平，返回出现次数最多的非缺失原始值
func modeValue(col *models.Column) (string, bool) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, cell := range col.Cells {
		if cell.Missing {
			continue
		}
		if _, seen := counts[cell.Value]; !seen {
			order = append(order, cell.Value)
		}
		counts[cell.Value]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

// formatNumeric 数值单元格的规范字符串表示
func formatNumeric(v float64) string {
	return cast.ToString(v)
}
