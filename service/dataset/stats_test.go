/*
 * @module service/dataset/stats_test
 * @description 列统计工具单元测试
 * @architecture 测试层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试准备 -> 统计计算 -> 数值验证
 * @rules 固定中位数下中位取法和分位数线性插值的契约
 * @dependencies testing, stretchr/testify
 */

package dataset

import (
	"math"
	"testing"

	"datacleaner-service/service/models"

	"github.com/stretchr/testify/assert"
)

// TestMedianLowerMiddle 测试偶数个值取下中位数
func TestMedianLowerMiddle(t *testing.T) {
	assert.Equal(t, 28.0, median([]float64{25, 30, 200, 28}))
	assert.Equal(t, 30.0, median([]float64{10, 30, 50}))
	assert.Equal(t, 7.0, median([]float64{7}))
	assert.True(t, math.IsNaN(median(nil)))
}

// TestQuantileInterpolation 测试分位数线性插值
func TestQuantileInterpolation(t *testing.T) {
	values := []float64{25, 28, 30, 200}

	assert.InDelta(t, 27.25, quantile(values, 0.25), 1e-9)
	assert.InDelta(t, 72.5, quantile(values, 0.75), 1e-9)
	assert.Equal(t, 25.0, quantile(values, 0))
	assert.Equal(t, 200.0, quantile(values, 1))
}

// TestTukeyFencesAgeScenario 测试年龄场景围栏：200在围栏外
func TestTukeyFencesAgeScenario(t *testing.T) {
	lower, upper := tukeyFences([]float64{25, 30, 200, 28})

	assert.InDelta(t, -40.625, lower, 1e-9)
	assert.InDelta(t, 140.375, upper, 1e-9)
	assert.Greater(t, 200.0, upper)
	assert.Less(t, 25.0, upper)
}

// TestSampleStdDev 测试样本标准差
func TestSampleStdDev(t *testing.T) {
	assert.InDelta(t, 1.0, sampleStdDev([]float64{1, 2, 3}), 1e-9)
	assert.Equal(t, 0.0, sampleStdDev([]float64{5}))
	assert.Equal(t, 0.0, sampleStdDev(nil))
}

// TestModeFirstEncountered 测试众数平局取首次出现的值
func TestModeFirstEncountered(t *testing.T) {
	col := &models.Column{Cells: []models.Cell{
		{Value: "b"}, {Value: "a"}, {Missing: true}, {Value: "a"}, {Value: "b"},
	}}

	value, ok := modeValue(col)
	assert.True(t, ok)
	assert.Equal(t, "b", value)

	empty := &models.Column{Cells: []models.Cell{{Missing: true}}}
	_, ok = modeValue(empty)
	assert.False(t, ok)
}
