/*
 * @module service/session/manager
 * @description 会话管理器，维护每个用户隔离的内存数据表，提供TTL过期和定时清扫
 * @architecture 分层架构 - 会话状态层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 上传创建会话 -> 清洗操作刷新活跃时间 -> 下载或过期后回收
 * @rules 每个会话独占其数据表，跨用户无共享可变状态；过期会话由定时任务回收
 * @dependencies github.com/google/uuid, github.com/robfig/cron/v3
 * @refs service/dataset, api/controllers
 */

package session

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"datacleaner-service/service/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DefaultTTL 会话默认存活时间
const DefaultTTL = 30 * time.Minute

// sweepSpec 清扫任务执行计划：每分钟整点
const sweepSpec = "0 * * * * *"

// Session 用户会话，持有当前数据表和已执行操作历史
type Session struct {
	ID         string
	Table      *models.Table
	History    []models.AppliedOperation
	CreatedAt  time.Time
	LastAccess time.Time

	mu sync.Mutex
}

// Lock 锁定会话，串行化同一会话上的清洗和导出操作
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock 解锁会话
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Manager 会话管理器
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	cron     *cron.Cron
	started  bool
}

// NewManager 创建会话管理器实例，TTL可通过SESSION_TTL_MINUTES环境变量配置
func NewManager() *Manager {
	ttl := DefaultTTL
	if val := os.Getenv("SESSION_TTL_MINUTES"); val != "" {
		if minutes, err := strconv.Atoi(val); err == nil && minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Create 以上传的数据表创建新会话
func (m *Manager) Create(table *models.Table) *Session {
	now := time.Now()
	session := &Session{
		ID:         uuid.New().String(),
		Table:      table,
		History:    make([]models.AppliedOperation, 0),
		CreatedAt:  now,
		LastAccess: now,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	slog.Info("会话创建成功", "session_id", session.ID, "rows", table.RowCount(), "columns", table.ColumnCount())
	return session
}

// Get 按ID获取会话并刷新活跃时间，不存在返回nil
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	m.mu.Lock()
	session.LastAccess = time.Now()
	m.mu.Unlock()
	return session
}

// Delete 结束并移除会话
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	slog.Info("会话已结束", "session_id", id)
	return true
}

// Count 当前活跃会话数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep 回收超过TTL未活跃的会话，返回回收数量
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.LastAccess.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper 启动定时清扫任务
func (m *Manager) StartSweeper() error {
	if m.started {
		return fmt.Errorf("会话清扫调度器已经启动")
	}

	_, err := m.cron.AddFunc(sweepSpec, func() {
		removed := m.Sweep()
		if removed > 0 {
			slog.Info("过期会话清扫完成", "removed_count", removed, "ttl_minutes", int(m.ttl.Minutes()))
		}
	})
	if err != nil {
		return fmt.Errorf("添加定时清扫任务失败: %w", err)
	}

	m.cron.Start()
	m.started = true
	slog.Info("会话清扫调度器启动成功", "ttl_minutes", int(m.ttl.Minutes()))
	return nil
}

// StopSweeper 停止定时清扫任务
func (m *Manager) StopSweeper() {
	if !m.started {
		return
	}
	m.cron.Stop()
	m.started = false
	slog.Info("会话清扫调度器已停止")
}
