/*
 * @module service/dataset/exporter
 * @description 数据集导出器，将内存表序列化为CSV字节流供下载
 * @architecture 分层架构 - 数据输出层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 内存表 -> 表头行 -> 逐行序列化 -> CSV字节流
 * @rules 保持列顺序，使用与加载器一致的逗号分隔约定，缺失值导出为空字段
 * @dependencies encoding/csv
 * @refs service/dataset/loader, api/controllers
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"datacleaner-service/service/models"
)

// ExportFilename 下载文件名约定，固定不变
const ExportFilename = "cleaned_dataset.csv"

// Exporter 数据集导出器
type Exporter struct{}

// NewExporter 创建数据集导出器实例
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 将表序列化为CSV字节流，首行为表头
func (e *Exporter) Export(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.ColumnNames()); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}

	rows := table.RowCount()
	record := make([]string, len(table.Columns))
	for i := 0; i < rows; i++ {
		for c := range table.Columns {
			cell := table.Columns[c].Cells[i]
			if cell.Missing {
				record[c] = ""
			} else {
				record[c] = cell.Value
			}
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("写入第%d行失败: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("序列化CSV失败: %w", err)
	}
	return buf.Bytes(), nil
}
