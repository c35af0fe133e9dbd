package repository

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type QuizResponseRepository struct {
	DB *gorm.DB
}

func NewQuizResponseRepository(db *gorm.DB) *QuizResponseRepository {
	return &QuizResponseRepository{DB: db}
}

// CreateTree 一次性持久化完整的作答树（作答、每题记录、勾选记录），
// 全部成功或全部回滚。(quiz_id, student_id) 唯一索引兜底并发重复提交。
func (r *QuizResponseRepository) CreateTree(response *model.QuizResponse) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateResponse
	}
	return err
}

func (r *QuizResponseRepository) FindByQuizAndStudent(quizID, studentID uint) (*model.QuizResponse, error) {
	var response model.QuizResponse
	err := r.DB.Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		First(&response).Error
	return &response, err
}

func (r *QuizResponseRepository) FindByID(id uint) (*model.QuizResponse, error) {
	var response model.QuizResponse
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_response_questions.id asc")
		}).
		Preload("Questions.Question").
		Preload("Questions.Selected.Answer").
		First(&response, id).Error
	return &response, err
}

// ListByQuiz 讲师复查用的聚合读取，预载完整作答树
func (r *QuizResponseRepository) ListByQuiz(quizID uint) ([]model.QuizResponse, error) {
	var responses []model.QuizResponse
	err := r.DB.
		Preload("Student").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_response_questions.id asc")
		}).
		Preload("Questions.Question").
		Preload("Questions.Selected.Answer").
		Where("quiz_id = ?", quizID).
		Order("created_at asc").
		Find(&responses).Error
	return responses, err
}

func (r *QuizResponseRepository) ListByStudent(studentID uint) ([]model.QuizResponse, error) {
	var responses []model.QuizResponse
	err := r.DB.Where("student_id = ?", studentID).Find(&responses).Error
	return responses, err
}
