package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizResult 一次测验作答记录，同一课程同一用户可以有多条
type QuizResult struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    string         `gorm:"size:64;not null;index:idx_quiz_course_user_completed,priority:1" json:"courseId"`
	UserID      string         `gorm:"size:191;not null;index:idx_quiz_course_user_completed,priority:2" json:"userId"`
	Score       int            `gorm:"not null" json:"score"`
	Total       int            `gorm:"not null" json:"total"`
	Answers     datatypes.JSON `json:"answers,omitempty"`
	CompletedAt time.Time      `gorm:"not null;index:idx_quiz_course_user_completed,priority:3" json:"completedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
