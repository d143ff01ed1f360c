/*
 * @module service/dataset/detector_test
 * @description 数据质量检测器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试准备 -> 检测执行 -> 报告验证
 * @rules 覆盖缺失统计、Tukey围栏离群值统计、表级整行重复统计和幂等性
 * @dependencies testing, stretchr/testify
 */

package dataset

import (
	"testing"

	"datacleaner-service/service/models"
	"datacleaner-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetectAgeScenario 测试年龄列场景：missing=1, outlier=1
func TestDetectAgeScenario(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(f.NumericColumn("age",
		testutil.Float(25), testutil.Float(30), nil, testutil.Float(200), testutil.Float(28)))

	detector := NewDetector()
	report := detector.Detect(table)

	require.Len(t, report.Columns, 1)
	assert.Equal(t, "age", report.Columns[0].Column)
	assert.Equal(t, 1, report.Columns[0].MissingCount)
	assert.Equal(t, 1, report.Columns[0].OutlierCount)
	assert.Equal(t, 0, report.DuplicateRows)
	assert.True(t, report.HasIssues())
}

// TestDetectDuplicateRows 测试表级整行重复统计
func TestDetectDuplicateRows(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(
		f.CategoricalColumn("name", "a", "b", "a", "a"),
		f.NumericColumn("v", testutil.Float(1), testutil.Float(2), testutil.Float(1), testutil.Float(3)),
	)

	detector := NewDetector()
	report := detector.Detect(table)

	// 行 (a,1) 出现两次，只有后一次计为重复
	assert.Equal(t, 1, report.DuplicateRows)
}

// TestDetectMissingNotDuplicate 测试缺失单元格与空字符串值不互为重复
func TestDetectMissingNotDuplicate(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(
		f.CategoricalColumn("a", "", "", "x"),
	)

	detector := NewDetector()
	report := detector.Detect(table)

	// 两个缺失行互为重复
	assert.Equal(t, 1, report.DuplicateRows)
	assert.Equal(t, 2, report.Columns[0].MissingCount)
}

// TestDetectCategoricalNoOutliers 测试分类列不计算离群值
func TestDetectCategoricalNoOutliers(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(f.CategoricalColumn("color", "red", "blue", "red", "green"))

	detector := NewDetector()
	report := detector.Detect(table)

	assert.Equal(t, 0, report.Columns[0].OutlierCount)
	assert.Equal(t, models.ColumnKindCategorical, report.Columns[0].Kind)
}

// TestDetectIdempotent 测试检测为纯函数，重复执行结果一致且不修改表
func TestDetectIdempotent(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(f.NumericColumn("v",
		testutil.Float(1), testutil.Float(2), nil, testutil.Float(100)))

	detector := NewDetector()
	first := detector.Detect(table)
	second := detector.Detect(table)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, table.RowCount())
}

// TestDetectCleanTable 测试无问题数据集
func TestDetectCleanTable(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(
		f.NumericColumn("v", testutil.Float(1), testutil.Float(2), testutil.Float(3)),
		f.CategoricalColumn("c", "x", "y", "z"),
	)

	detector := NewDetector()
	report := detector.Detect(table)

	assert.False(t, report.HasIssues())
}
