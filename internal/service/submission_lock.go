package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SubmissionLocker 按 (quiz, student) 串行化提交，
// 用于关闭 check-then-act 的重复提交竞态（数据库唯一索引兜底）。
type SubmissionLocker interface {
	Acquire(ctx context.Context, quizID, studentID uint) (bool, error)
	Release(ctx context.Context, quizID, studentID uint)
}

const submissionLockTTL = 15 * time.Second

// RedisSubmissionLocker SETNX 实现，锁带 TTL 防止崩溃后死锁
type RedisSubmissionLocker struct {
	RDB *redis.Client
}

func NewRedisSubmissionLocker(rdb *redis.Client) *RedisSubmissionLocker {
	return &RedisSubmissionLocker{RDB: rdb}
}

func submissionLockKey(quizID, studentID uint) string {
	return fmt.Sprintf("quiz:submit_lock:%d:%d", quizID, studentID)
}

func (l *RedisSubmissionLocker) Acquire(ctx context.Context, quizID, studentID uint) (bool, error) {
	return l.RDB.SetNX(ctx, submissionLockKey(quizID, studentID), 1, submissionLockTTL).Result()
}

func (l *RedisSubmissionLocker) Release(ctx context.Context, quizID, studentID uint) {
	l.RDB.Del(ctx, submissionLockKey(quizID, studentID))
}
