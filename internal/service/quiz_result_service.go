package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"

	"gorm.io/gorm"
)

// QuizResultStore 测验结果的存储接口
type QuizResultStore interface {
	FindLatest(ctx context.Context, courseID, userID string) (*model.QuizResult, error)
	Create(ctx context.Context, result *model.QuizResult) error
	CountByCourseAndUser(ctx context.Context, courseID, userID string) (int64, error)
}

type QuizResultService struct {
	store   QuizResultStore
	timeout atomic.Int64
}

func NewQuizResultService(store QuizResultStore, timeout time.Duration) *QuizResultService {
	s := &QuizResultService{store: store}
	s.SetTimeout(timeout)
	return s
}

func (s *QuizResultService) SetTimeout(d time.Duration) {
	s.timeout.Store(int64(d))
}

// GetLatestResult 返回最近一次作答，没有记录时返回 nil, nil
func (s *QuizResultService) GetLatestResult(ctx context.Context, courseID, userID string) (*model.QuizResult, error) {
	courseID = strings.TrimSpace(courseID)
	userID = strings.TrimSpace(userID)
	if courseID == "" || userID == "" {
		return nil, util.ErrMissingIdentifiers
	}

	if d := time.Duration(s.timeout.Load()); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	result, err := s.store.FindLatest(ctx, courseID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest quiz result: %w", err)
	}
	return result, nil
}

// RecordResult 写入一次作答，完成时间为空时取当前时间
func (s *QuizResultService) RecordResult(ctx context.Context, result *model.QuizResult) error {
	result.CourseID = strings.TrimSpace(result.CourseID)
	result.UserID = strings.TrimSpace(result.UserID)
	if result.CourseID == "" || result.UserID == "" {
		return util.ErrMissingIdentifiers
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}
	return s.store.Create(ctx, result)
}

// AttemptCount 同一课程同一用户的作答次数
func (s *QuizResultService) AttemptCount(ctx context.Context, courseID, userID string) (int64, error) {
	courseID = strings.TrimSpace(courseID)
	userID = strings.TrimSpace(userID)
	if courseID == "" || userID == "" {
		return 0, util.ErrMissingIdentifiers
	}
	count, err := s.store.CountByCourseAndUser(ctx, courseID, userID)
	if err != nil {
		return 0, fmt.Errorf("count quiz attempts: %w", err)
	}
	return count, nil
}
