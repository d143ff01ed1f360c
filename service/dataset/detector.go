/*
 * @module service/dataset/detector
 * @description 数据质量检测器，逐列统计缺失值、数值列离群值，表级统计整行重复
 * @architecture 分层架构 - 数据质量检测层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 内存表 -> 逐列统计 -> 表级重复统计 -> 质量报告
 * @rules 纯函数，无副作用，幂等；离群值只对数值列计算
 * @dependencies datacleaner-service/service/models
 * @refs service/dataset/cleaner, service/dataset/service
 */

package dataset

import (
	"datacleaner-service/service/models"
)

// Detector 数据质量检测器
type Detector struct{}

// NewDetector 创建数据质量检测器实例
func NewDetector() *Detector {
	return &Detector{}
}

// Detect 对整表执行质量检测，返回逐列问题和表级重复行数
func (d *Detector) Detect(table *models.Table) *models.IssueReport {
	report := &models.IssueReport{
		Columns: make([]models.ColumnIssue, 0, len(table.Columns)),
	}

	for i := range table.Columns {
		col := &table.Columns[i]
		issue := models.ColumnIssue{
			Column:       col.Name,
			Kind:         col.Kind,
			MissingCount: missingCount(col),
		}
		if col.Kind == models.ColumnKindNumeric {
			issue.OutlierCount = d.countOutliers(col)
		}
		report.Columns = append(report.Columns, issue)
	}

	report.DuplicateRows = d.countDuplicateRows(table)
	return report
}

// countOutliers 统计数值列中落在Tukey围栏之外的值个数
func (d *Detector) countOutliers(col *models.Column) int {
	values := numericValues(col)
	if len(values) == 0 {
		return 0
	}
	lower, upper := tukeyFences(values)

	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// countDuplicateRows 统计整行重复的后续出现次数（首次出现不计）
func (d *Detector) countDuplicateRows(table *models.Table) int {
	rows := table.RowCount()
	seen := make(map[string]bool, rows)
	count := 0
	for i := 0; i < rows; i++ {
		key := table.RowKey(i)
		if seen[key] {
			count++
		} else {
			seen[key] = true
		}
	}
	return count
}
