package repository

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteQuizTree(tx, id)
	})
}

func (r *QuizRepository) ListByClassroom(classroomID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("classroom_id = ?", classroomID).
		Order("start asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByClassrooms(classroomIDs []uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(classroomIDs) == 0 {
		return quizzes, nil
	}
	err := r.DB.Where("classroom_id IN ?", classroomIDs).
		Order("start asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByClassroomAndTitle(classroomID uint, title string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("classroom_id = ? AND title = ?", classroomID, title).
		First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) CountResponses(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizResponse{}).Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count, err
}

// ListQuestions 按题号升序返回题目及其候选答案
func (r *QuizRepository) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_answers.letter asc")
	}).Where("quiz_id = ?", quizID).Order("number asc").Find(&questions).Error
	return questions, err
}

// ReplaceQuestions 在一个事务里整体替换测验的题目和答案。
// 事务内部再次检查作答数，与并发提交共用同一事务边界，
// 避免删除与在途提交的题目查找交错。
func (r *QuizRepository) ReplaceQuestions(quizID uint, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var responses int64
		if err := tx.Model(&model.QuizResponse{}).Where("quiz_id = ?", quizID).
			Count(&responses).Error; err != nil {
			return err
		}
		if responses > 0 {
			return util.ErrAuthoringLocked
		}

		if err := deleteQuestions(tx, quizID); err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = quizID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteQuestions(tx *gorm.DB, quizID uint) error {
	var questionIDs []uint
	if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).
		Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).
			Delete(&model.QuizAnswer{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error
}

// deleteQuizTree 删除测验及其题目、答案和全部作答记录
func deleteQuizTree(tx *gorm.DB, quizID uint) error {
	var responseIDs []uint
	if err := tx.Model(&model.QuizResponse{}).Where("quiz_id = ?", quizID).
		Pluck("id", &responseIDs).Error; err != nil {
		return err
	}
	if len(responseIDs) > 0 {
		var rqIDs []uint
		if err := tx.Model(&model.QuizResponseQuestion{}).
			Where("response_id IN ?", responseIDs).
			Pluck("id", &rqIDs).Error; err != nil {
			return err
		}
		if len(rqIDs) > 0 {
			if err := tx.Where("response_question_id IN ?", rqIDs).
				Delete(&model.QuizResponseAnswer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("response_id IN ?", responseIDs).
			Delete(&model.QuizResponseQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).
			Delete(&model.QuizResponse{}).Error; err != nil {
			return err
		}
	}

	if err := deleteQuestions(tx, quizID); err != nil {
		return err
	}
	return tx.Delete(&model.Quiz{}, quizID).Error
}

// IsLocked 仅做守卫判断，不触发任何删除
func (r *QuizRepository) IsLocked(quizID uint) (bool, error) {
	count, err := r.CountResponses(quizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
