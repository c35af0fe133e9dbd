package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).
			Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assignment{}, id).Error
	})
}

func (r *AssignmentRepository) ListByClassroom(classroomID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("classroom_id = ?", classroomID).
		Order("date_due asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByClassrooms(classroomIDs []uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if len(classroomIDs) == 0 {
		return assignments, nil
	}
	err := r.DB.Where("classroom_id IN ?", classroomIDs).
		Order("date_due asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) CreateSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *AssignmentRepository) FindSubmission(assignmentID, studentID uint) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	return &submission, err
}

func (r *AssignmentRepository) FindSubmissionByID(id uint) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *AssignmentRepository) UpdateSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *AssignmentRepository) ListSubmissions(assignmentID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.Preload("Student").Where("assignment_id = ?", assignmentID).
		Order("created_at asc").Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepository) ListSubmissionsByStudent(studentID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.Where("student_id = ?", studentID).Find(&submissions).Error
	return submissions, err
}
