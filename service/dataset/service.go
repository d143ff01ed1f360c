/*
 * @module service/dataset/service
 * @description 数据集服务门面，组合加载、检测、清洗、导出能力并提供概览构建
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 上传 -> 概览+质量检测 -> 清洗分发 -> 概览刷新 -> 导出
 * @rules 每次清洗操作作用于会话当前表，操作顺序敏感且不可回退
 * @dependencies datacleaner-service/service/models
 * @refs api/controllers/dataset_controller, service/session
 */

package dataset

import (
	"os"
	"strconv"

	"datacleaner-service/service/models"
)

// DefaultPreviewRows 概览预览默认行数
const DefaultPreviewRows = 5

// Service 数据集服务
type Service struct {
	loader      *Loader
	detector    *Detector
	cleaner     *Cleaner
	exporter    *Exporter
	previewRows int
}

// NewService 创建数据集服务实例，预览行数可通过PREVIEW_ROWS环境变量配置
func NewService() *Service {
	previewRows := DefaultPreviewRows
	if val := os.Getenv("PREVIEW_ROWS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			previewRows = n
		}
	}

	return &Service{
		loader:      NewLoader(),
		detector:    NewDetector(),
		cleaner:     NewCleaner(),
		exporter:    NewExporter(),
		previewRows: previewRows,
	}
}

// Load 解析上传内容
func (s *Service) Load(data []byte) (*models.Table, error) {
	return s.loader.Load(data)
}

// Detect 执行质量检测
func (s *Service) Detect(table *models.Table) *models.IssueReport {
	return s.detector.Detect(table)
}

// Clean 执行一次清洗操作
func (s *Service) Clean(table *models.Table, column string, method models.CleanMethod) *models.CleanResult {
	return s.cleaner.Apply(table, column, method)
}

// Export 序列化当前表
func (s *Service) Export(table *models.Table) ([]byte, error) {
	return s.exporter.Export(table)
}

// MethodsFor 返回指定列类型可用的清洗方法
func (s *Service) MethodsFor(kind models.ColumnKind) []models.CleanMethod {
	methods := []models.CleanMethod{
		models.MethodImputeMode,
		models.MethodDropMissingRows,
		models.MethodDropColumn,
		models.MethodRemoveDuplicates,
	}
	if kind == models.ColumnKindNumeric {
		methods = append(methods,
			models.MethodImputeMean,
			models.MethodImputeMedian,
			models.MethodRemoveOutliers,
			models.MethodCapOutliers,
			models.MethodStandardize,
		)
	}
	if kind == models.ColumnKindCategorical {
		methods = append(methods,
			models.MethodOneHotEncode,
			models.MethodLabelEncode,
		)
	}
	return methods
}

// Overview 构建数据集概览，包含维度、列描述符和前若干行预览
func (s *Service) Overview(table *models.Table, history []models.AppliedOperation) *models.DatasetOverview {
	report := s.detector.Detect(table)

	fields := make([]models.ColumnDescriptor, 0, len(report.Columns))
	for _, issue := range report.Columns {
		fields = append(fields, models.ColumnDescriptor{
			Name:         issue.Column,
			Kind:         issue.Kind,
			MissingCount: issue.MissingCount,
			OutlierCount: issue.OutlierCount,
		})
	}

	rows := table.RowCount()
	previewRows := s.previewRows
	if previewRows > rows {
		previewRows = rows
	}
	preview := make([][]string, 0, previewRows)
	for i := 0; i < previewRows; i++ {
		row := make([]string, len(table.Columns))
		for c := range table.Columns {
			cell := table.Columns[c].Cells[i]
			if cell.Missing {
				row[c] = ""
			} else {
				row[c] = cell.Value
			}
		}
		preview = append(preview, row)
	}

	return &models.DatasetOverview{
		Rows:    rows,
		Columns: table.ColumnCount(),
		Fields:  fields,
		Headers: table.ColumnNames(),
		Preview: preview,
		History: history,
	}
}
