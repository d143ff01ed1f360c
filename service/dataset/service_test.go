/*
 * @module service/dataset/service_test
 * @description 数据集服务门面单元测试
 * @architecture 测试层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试准备 -> 门面调用 -> 概览验证
 * @rules 覆盖概览构建、预览行数截断和方法适用性表
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

// TestServiceOverview 测试概览包含维度、描述符和预览
func TestServiceOverview(t *testing.T) {
	svc := NewService()
	f := testutil.NewTableFactory()
	table := f.Table(
		f.NumericColumn("age", testutil.Float(25), nil, testutil.Float(30)),
		f.CategoricalColumn("city", "Beijing", "Shanghai", "Beijing"),
	)

	overview := svc.Overview(table, nil)

	assert.Equal(t, 3, overview.Rows)
	assert.Equal(t, 2, overview.Columns)
	assert.Equal(t, []string{"age", "city"}, overview.Headers)

	require.Len(t, overview.Fields, 2)
	assert.Equal(t, models.ColumnKindNumeric, overview.Fields[0].Kind)
	assert.Equal(t, 1, overview.Fields[0].MissingCount)

	// 预览不超过数据行数，缺失渲染为空字符串
	require.Len(t, overview.Preview, 3)
	assert.Equal(t, []string{"25", "Beijing"}, overview.Preview[0])
	assert.Equal(t, []string{"", "Shanghai"}, overview.Preview[1])
}

// TestServicePreviewTruncation 测试预览行数截断到默认上限
func TestServicePreviewTruncation(t *testing.T) {
	svc := NewService()
	f := testutil.NewTableFactory()

	values := make([]*float64, 0, 20)
	for i := 0; i < 20; i++ {
		values = append(values, testutil.Float(float64(i)))
	}
	table := f.Table(f.NumericColumn("v", values...))

	overview := svc.Overview(table, nil)
	assert.Len(t, overview.Preview, DefaultPreviewRows)
}

// TestServiceMethodsFor 测试方法适用性表
func TestServiceMethodsFor(t *testing.T) {
	svc := NewService()

	numeric := svc.MethodsFor(models.ColumnKindNumeric)
	assert.Contains(t, numeric, models.MethodImputeMean)
	assert.Contains(t, numeric, models.MethodCapOutliers)
	assert.Contains(t, numeric, models.MethodRemoveDuplicates)
	assert.NotContains(t, numeric, models.MethodOneHotEncode)

	categorical := svc.MethodsFor(models.ColumnKindCategorical)
	assert.Contains(t, categorical, models.MethodOneHotEncode)
	assert.Contains(t, categorical, models.MethodLabelEncode)
	assert.Contains(t, categorical, models.MethodImputeMode)
	assert.NotContains(t, categorical, models.MethodStandardize)
}
