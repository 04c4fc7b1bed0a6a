package repository

import (
	"context"
	"strings"
	"testing"

	"hr_learning_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type renderedStatement struct {
	sql  string
	vars []interface{}
}

// dryRunDB 只生成 SQL 不连接数据库，通过回调记录每条语句
func dryRunDB(t *testing.T) (*gorm.DB, *[]renderedStatement) {
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/test?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	var captured []renderedStatement
	record := func(tx *gorm.DB) {
		captured = append(captured, renderedStatement{
			sql:  tx.Statement.SQL.String(),
			vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:record_create", record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:record_query", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:record_update", record))
	return db, &captured
}

func TestActivityRepository_IncrementIsSingleUpsert(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()
	owner := model.LearnerOwned{EmployeeID: "e1"}

	first := model.ActivityCounters{TotalMinutes: 30, LessonsCompleted: 1}
	require.NoError(t, repo.Increment(ctx, owner, "2024-06-10", first, 40))
	again := model.ActivityCounters{TotalMinutes: 5, QuizzesAttempted: 2, AssessmentsAttempted: 1, LiveSessionsAttended: 3}
	require.NoError(t, repo.Increment(ctx, owner, "2024-06-10", again, 115))

	require.Len(t, *captured, 2, "one statement per write, no read before it")
	for _, stmt := range *captured {
		assert.True(t, strings.HasPrefix(stmt.sql, "INSERT INTO `learning_activities`"), stmt.sql)
		assert.Contains(t, stmt.sql, "ON DUPLICATE KEY UPDATE")
		for _, col := range []string{
			"total_minutes", "lessons_completed", "quizzes_attempted",
			"assessments_attempted", "live_sessions_attended", "activity_score",
		} {
			assert.Contains(t, stmt.sql, "`"+col+"`="+col+" + ?")
		}
	}
	assert.Equal(t, (*captured)[0].sql, (*captured)[1].sql, "repeat writes use the same statement")

	// 更新子句按列名排序：activity_score, assessments, lessons, live, quizzes, minutes
	tail := func(vars []interface{}) []interface{} { return vars[len(vars)-6:] }
	assert.Equal(t, []interface{}{40, 0, 1, 0, 0, 30}, tail((*captured)[0].vars))
	assert.Equal(t, []interface{}{115, 1, 0, 3, 2, 5}, tail((*captured)[1].vars))

	// 首次写入的插入值就是本次增量
	assert.Contains(t, (*captured)[0].vars, "e1")
	assert.Contains(t, (*captured)[0].vars, "2024-06-10")
}

func TestLearningActivity_UniqueOwnerDay(t *testing.T) {
	db, _ := dryRunDB(t)
	stmt := &gorm.Statement{DB: db}
	require.NoError(t, stmt.Parse(&model.LearningActivity{}))

	idx := stmt.Schema.LookIndex("idx_learning_activity_owner_day")
	require.NotNil(t, idx, "conflict target must be backed by a unique index")
	assert.Equal(t, "UNIQUE", idx.Class)

	cols := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		cols = append(cols, f.DBName)
	}
	assert.ElementsMatch(t, []string{"employee_id", "user_id", "day"}, cols)
}
