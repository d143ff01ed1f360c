/*
 * @module service/dataset/exporter_test
 * @description 数据集导出器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试准备 -> 导出执行 -> 往返验证
 * @rules 覆盖列顺序保持、缺失值空字段约定和导出-加载往返一致性
 * @dependencies testing, stretchr/testify
 */

package dataset

import (
	"strings"
	"testing"

	"datacleaner-service/service/models"
	"datacleaner-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExportBasic 测试基本导出格式
func TestExportBasic(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(
		f.CategoricalColumn("name", "Alice", "Bob"),
		f.NumericColumn("age", testutil.Float(25), nil),
	)

	exporter := NewExporter()
	data, err := exporter.Export(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,age", lines[0])
	assert.Equal(t, "Alice,25", lines[1])
	assert.Equal(t, "Bob,", lines[2])
}

// TestExportQuoting 测试含分隔符的值被正确引用
func TestExportQuoting(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(f.CategoricalColumn("c", "a,b", "plain"))

	exporter := NewExporter()
	data, err := exporter.Export(table)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"a,b"`)
}

// TestExportLoadRoundTrip 测试导出后重新加载的往返一致性
func TestExportLoadRoundTrip(t *testing.T) {
	f := testutil.NewTableFactory()
	original := f.Table(
		f.CategoricalColumn("name", "Alice", "Bob", "Carol"),
		f.NumericColumn("age", testutil.Float(25), nil, testutil.Float(28.5)),
		f.CategoricalColumn("city", "Beijing", "Shanghai", ""),
	)

	exporter := NewExporter()
	loader := NewLoader()

	data, err := exporter.Export(original)
	require.NoError(t, err)

	reloaded, err := loader.Load(data)
	require.NoError(t, err)

	assert.Equal(t, original.RowCount(), reloaded.RowCount())
	assert.Equal(t, original.ColumnNames(), reloaded.ColumnNames())

	for c := range original.Columns {
		for i := range original.Columns[c].Cells {
			expected := original.Columns[c].Cells[i]
			actual := reloaded.Columns[c].Cells[i]
			assert.Equal(t, expected.Missing, actual.Missing, "col %d row %d", c, i)
			if !expected.Missing {
				assert.Equal(t, expected.Value, actual.Value, "col %d row %d", c, i)
			}
		}
	}

	// 类型推断在往返后保持稳定
	assert.Equal(t, models.ColumnKindCategorical, reloaded.Columns[0].Kind)
	assert.Equal(t, models.ColumnKindNumeric, reloaded.Columns[1].Kind)
}

// TestExportEmptyTable 测试仅有表头的表导出
func TestExportEmptyTable(t *testing.T) {
	f := testutil.NewTableFactory()
	table := f.Table(f.NumericColumn("a"), f.NumericColumn("b"))

	exporter := NewExporter()
	data, err := exporter.Export(table)
	require.NoError(t, err)

	assert.Equal(t, "a,b\n", string(data))
}
