package repository

import (
	"context"
	"intellistudy_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// FindLatest 按完成时间倒序取最新一条，时间相同时取 id 较大者
func (r *QuizResultRepository) FindLatest(ctx context.Context, courseID, userID string) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Order("completed_at desc").
		Order("id desc").
		Take(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *QuizResultRepository) Create(ctx context.Context, result *model.QuizResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *QuizResultRepository) CountByCourseAndUser(ctx context.Context, courseID, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizResult{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count, err
}
