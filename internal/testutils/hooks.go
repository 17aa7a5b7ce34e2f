package testutils

import (
	"sync"
	"testing"

	"gorm.io/gorm"
)

// ExecBeforeCreate 在下一次向 table 插入之前, 于同一连接上执行一次 stmt.
// 用来模拟另一个请求在"先查后写"之间抢先写入或删除了数据.
func ExecBeforeCreate(t *testing.T, db *gorm.DB, table, stmt string, args ...any) {
	t.Helper()

	name := "testutils:exec_before_create:" + t.Name()
	var once sync.Once
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		once.Do(func() {
			// NewDB 会保留当前 ConnPool, 事务内执行时不会另开连接
			if err := tx.Session(&gorm.Session{NewDB: true}).Exec(stmt, args...).Error; err != nil {
				t.Errorf("exec before create on %s: %v", table, err)
			}
		})
	})
	if err != nil {
		t.Fatalf("register create callback: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}
