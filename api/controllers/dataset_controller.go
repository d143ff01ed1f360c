/*
 * @module api/controllers/dataset_controller
 * @description 数据集控制器，提供上传、概览、质量检测、清洗、导出和会话管理接口
 * @architecture 分层架构 - 控制器层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 上传创建会话 -> 概览与问题展示 -> 清洗分发 -> 导出下载
 * @rules 统一的错误处理和响应格式；解析失败返回400，会话不存在返回404，清洗失败只产生警告
 * @dependencies datacleaner-service/service, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/dataset, service/session
 */

package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"datacleaner-service/service"
	"datacleaner-service/service/dataset"
	"datacleaner-service/service/metrics"
	"datacleaner-service/service/models"
	"datacleaner-service/service/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// maxUploadBytes 上传大小上限 32MB
const maxUploadBytes = 32 << 20

// DatasetController 数据集控制器
type DatasetController struct {
	datasetService *dataset.Service
	sessionManager *session.Manager
}

// NewDatasetController 创建数据集控制器实例
func NewDatasetController() *DatasetController {
	return &DatasetController{
		datasetService: service.GlobalDatasetService,
		sessionManager: service.GlobalSessionManager,
	}
}

// Upload 上传数据集
// @Summary 上传数据集
// @Description 上传CSV数据集文件，创建会话并返回概览和质量检测结果
// @Tags 数据集
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV数据集文件"
// @Success 200 {object} APIResponse{data=models.UploadResponse} "上传成功"
// @Failure 400 {object} APIResponse "文件缺失或解析失败"
// @Router /datasets/upload [post]
func (c *DatasetController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("缺少上传文件", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("读取上传文件失败", err))
		return
	}

	table, err := c.datasetService.Load(data)
	if err != nil {
		metrics.UploadFailuresTotal.Inc()
		var parseErr *models.ParseError
		if errors.As(err, &parseErr) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, BadRequestResponse("数据集解析失败", err))
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, InternalErrorResponse("数据集加载失败", err))
		return
	}

	sess := c.sessionManager.Create(table)
	metrics.UploadsTotal.Inc()

	response := &models.UploadResponse{
		SessionID: sess.ID,
		Overview:  c.datasetService.Overview(table, sess.History),
		Issues:    c.datasetService.Detect(table),
	}
	render.JSON(w, r, SuccessResponse("上传数据集成功", response))
}

// GetDataset 获取数据集概览
// @Summary 获取数据集概览
// @Description 返回当前会话数据表的维度、列描述符、预览和操作历史
// @Tags 数据集
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} APIResponse{data=models.DatasetOverview} "获取成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id} [get]
func (c *DatasetController) GetDataset(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.requireSession(w, r)
	if !ok {
		return
	}

	sess.Lock()
	overview := c.datasetService.Overview(sess.Table, sess.History)
	sess.Unlock()

	render.JSON(w, r, SuccessResponse("获取数据集概览成功", overview))
}

// GetIssues 获取质量检测报告
// @Summary 获取质量检测报告
// @Description 对当前会话数据表执行质量检测，返回逐列缺失、离群值和表级重复统计
// @Tags 数据集
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} APIResponse{data=models.IssueReport} "获取成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id}/issues [get]
func (c *DatasetController) GetIssues(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.requireSession(w, r)
	if !ok {
		return
	}

	sess.Lock()
	report := c.datasetService.Detect(sess.Table)
	sess.Unlock()

	render.JSON(w, r, SuccessResponse("获取质量检测报告成功", report))
}

// GetMethods 获取列可用清洗方法
// @Summary 获取列可用清洗方法
// @Description 按列类型返回适用的清洗方法列表
// @Tags 数据集
// @Produce json
// @Param id path string true "会话ID"
// @Param column query string true "列名"
// @Success 200 {object} APIResponse{data=models.MethodsResponse} "获取成功"
// @Failure 400 {object} APIResponse "列不存在"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id}/methods [get]
func (c *DatasetController) GetMethods(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.requireSession(w, r)
	if !ok {
		return
	}

	column := r.URL.Query().Get("column")

	sess.Lock()
	defer sess.Unlock()

	idx := sess.Table.ColumnIndex(column)
	if idx < 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("列不存在: "+column, nil))
		return
	}

	kind := sess.Table.Columns[idx].Kind
	response := &models.MethodsResponse{
		Column:  column,
		Kind:    kind,
		Methods: c.datasetService.MethodsFor(kind),
	}
	render.JSON(w, r, SuccessResponse("获取可用清洗方法成功", response))
}

// Clean 执行清洗操作
// @Summary 执行清洗操作
// @Description 对指定列应用一种清洗方法；前置条件不满足时表保持不变并返回警告
// @Tags 数据集
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param request body models.CleanRequest true "清洗请求"
// @Success 200 {object} APIResponse{data=models.CleanResponse} "执行完成（可能包含警告）"
// @Failure 400 {object} APIResponse "请求参数格式错误"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id}/clean [post]
func (c *DatasetController) Clean(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.requireSession(w, r)
	if !ok {
		return
	}

	var req models.CleanRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, BadRequestResponse("请求参数格式错误", err))
		return
	}

	sess.Lock()
	defer sess.Unlock()

	result := c.datasetService.Clean(sess.Table, req.Column, req.Method)
	if result.Applied {
		metrics.CleanOperationsTotal.WithLabelValues(string(req.Method)).Inc()
		sess.History = append(sess.History, models.AppliedOperation{
			Column:    req.Column,
			Method:    req.Method,
			Warnings:  result.Warnings,
			AppliedAt: time.Now(),
		})
	} else {
		metrics.CleanNoopTotal.Inc()
	}

	slog.Info("清洗操作执行完成",
		"session_id", sess.ID,
		"column", req.Column,
		"method", req.Method,
		"applied", result.Applied,
		"warnings", len(result.Warnings))

	response := &models.CleanResponse{
		Result:   result,
		Overview: c.datasetService.Overview(sess.Table, sess.History),
		Issues:   c.datasetService.Detect(sess.Table),
	}
	render.JSON(w, r, SuccessResponse("清洗操作执行完成", response))
}

// Export 导出数据集
// @Summary 导出数据集
// @Description 将当前会话数据表序列化为CSV并以附件形式下载
// @Tags 数据集
// @Produce text/csv
// @Param id path string true "会话ID"
// @Success 200 {file} file "CSV文件"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id}/export [get]
func (c *DatasetController) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := c.requireSession(w, r)
	if !ok {
		return
	}

	sess.Lock()
	data, err := c.datasetService.Export(sess.Table)
	sess.Unlock()
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, InternalErrorResponse("导出数据集失败", err))
		return
	}

	metrics.ExportsTotal.Inc()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=`+dataset.ExportFilename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DeleteDataset 结束会话
// @Summary 结束会话
// @Description 删除会话及其内存数据表
// @Tags 数据集
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} APIResponse "删除成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /datasets/{id} [delete]
func (c *DatasetController) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !c.sessionManager.Delete(id) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, NotFoundResponse("会话不存在: "+id, nil))
		return
	}
	render.JSON(w, r, SuccessResponse("会话已结束", nil))
}

// requireSession 获取路径参数中的会话，不存在时写入404响应
func (c *DatasetController) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess := c.sessionManager.Get(id)
	if sess == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, NotFoundResponse("会话不存在: "+id, nil))
		return nil, false
	}
	return sess, true
}
