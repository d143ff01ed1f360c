/*
 * @module service/session/manager_test
 * @description 会话管理器单元测试
 * @architecture 测试层
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试准备 -> 会话操作 -> 状态验证
 * @rules 覆盖会话生命周期、活跃时间刷新和TTL过期清扫
 * @dependencies testing, stretchr/testify
 */

package session

import (
	"testing"
	"time"

	"datacleaner-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *models.Table {
	return &models.Table{Columns: []models.Column{{
		Name:  "v",
		Kind:  models.ColumnKindNumeric,
		Cells: []models.Cell{{Value: "1"}, {Value: "2"}},
	}}}
}

// TestManagerCreateAndGet 测试会话创建和获取
func TestManagerCreateAndGet(t *testing.T) {
	manager := NewManager()

	sess := manager.Create(testTable())
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, manager.Count())

	got := manager.Get(sess.ID)
	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 2, got.Table.RowCount())

	assert.Nil(t, manager.Get("no-such-session"))
}

// TestManagerGetRefreshesLastAccess 测试获取会话刷新活跃时间
func TestManagerGetRefreshesLastAccess(t *testing.T) {
	manager := NewManager()
	sess := manager.Create(testTable())

	stale := time.Now().Add(-time.Hour)
	sess.LastAccess = stale

	manager.Get(sess.ID)
	assert.True(t, sess.LastAccess.After(stale))
}

// TestManagerDelete 测试会话删除
func TestManagerDelete(t *testing.T) {
	manager := NewManager()
	sess := manager.Create(testTable())

	assert.True(t, manager.Delete(sess.ID))
	assert.False(t, manager.Delete(sess.ID))
	assert.Nil(t, manager.Get(sess.ID))
	assert.Equal(t, 0, manager.Count())
}

// TestManagerSweepExpiredOnly 测试清扫只回收过期会话
func TestManagerSweepExpiredOnly(t *testing.T) {
	manager := NewManager()

	expired := manager.Create(testTable())
	active := manager.Create(testTable())

	expired.LastAccess = time.Now().Add(-manager.ttl - time.Minute)

	removed := manager.Sweep()
	assert.Equal(t, 1, removed)
	assert.Nil(t, manager.Get(expired.ID))
	assert.NotNil(t, manager.Get(active.ID))
}

// TestManagerSweeperLifecycle 测试清扫调度器启动停止
func TestManagerSweeperLifecycle(t *testing.T) {
	manager := NewManager()

	require.NoError(t, manager.StartSweeper())
	assert.Error(t, manager.StartSweeper())

	manager.StopSweeper()
	manager.StopSweeper()
}

// TestSessionIsolation 测试会话间数据表互相隔离
func TestSessionIsolation(t *testing.T) {
	manager := NewManager()

	first := manager.Create(testTable())
	second := manager.Create(testTable())

	first.Table.Columns[0].Cells[0].Value = "changed"
	assert.Equal(t, "1", second.Table.Columns[0].Cells[0].Value)
}
