/*
 * @module service/init
 * @description 服务初始化模块，负责全局服务实例创建和定时任务启动
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies datacleaner-service/service/dataset, datacleaner-service/service/session
 * @refs api/routes
 */

package service

import (
	"log"

	"datacleaner-service/service/dataset"
	"datacleaner-service/service/metrics"
	"datacleaner-service/service/session"
)

var (
	GlobalDatasetService *dataset.Service
	GlobalSessionManager *session.Manager
)

func init() {
	initServices()
}

// initServices 初始化服务
func initServices() {
	GlobalDatasetService = dataset.NewService()
	GlobalSessionManager = session.NewManager()

	// 活跃会话数指标跟随会话管理器
	metrics.RegisterActiveSessions(GlobalSessionManager.Count)

	// 启动会话清扫调度器
	if err := GlobalSessionManager.StartSweeper(); err != nil {
		log.Printf("启动会话清扫调度器失败: %v", err)
	}
	log.Println("服务初始化完成")
}
