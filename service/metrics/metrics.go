/*
 * @module service/metrics/metrics
 * @description 运行指标采集，统计上传、清洗操作、导出次数和活跃会话数
 * @architecture 工具模块 - 指标采集层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 业务操作 -> 计数器累加 -> /metrics端点暴露
 * @rules 指标注册到默认Registry，由main统一挂载promhttp
 * @dependencies github.com/prometheus/client_golang
 * @refs main.go, api/controllers
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal 数据集上传成功次数
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_uploads_total",
		Help: "Total number of successfully parsed dataset uploads.",
	})

	// UploadFailuresTotal 数据集上传解析失败次数
	UploadFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_upload_failures_total",
		Help: "Total number of dataset uploads rejected with a parse error.",
	})

	// CleanOperationsTotal 按方法统计的清洗操作次数
	CleanOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dataset_clean_operations_total",
		Help: "Total number of applied cleaning operations, by method.",
	}, []string{"method"})

	// CleanNoopTotal 因前置条件不满足而空转的清洗请求次数
	CleanNoopTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_clean_noop_total",
		Help: "Total number of cleaning requests that resulted in a no-op warning.",
	})

	// ExportsTotal 数据集导出次数
	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dataset_exports_total",
		Help: "Total number of dataset exports.",
	})
)

// RegisterActiveSessions 注册活跃会话数Gauge，取值函数由会话管理器提供
func RegisterActiveSessions(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dataset_active_sessions",
		Help: "Number of sessions currently held in memory.",
	}, func() float64 {
		return float64(count())
	})
}
