package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService struct {
	Repo          *repository.AssignmentRepository
	ClassroomRepo *repository.ClassroomRepository
	Storage       *StorageService
}

func NewAssignmentService(repo *repository.AssignmentRepository, classroomRepo *repository.ClassroomRepository, storage *StorageService) *AssignmentService {
	return &AssignmentService{Repo: repo, ClassroomRepo: classroomRepo, Storage: storage}
}

type AssignmentReq struct {
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	DateDue *time.Time `json:"dateDue"`
}

func (s *AssignmentService) Create(ownerID, classroomID uint, req AssignmentReq) (*model.Assignment, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.DateDue == nil {
		return nil, errors.New("dateDue is required")
	}

	assignment := &model.Assignment{
		OwnerID:     ownerID,
		ClassroomID: classroomID,
		Title:       *req.Title,
		DateDue:     *req.DateDue,
	}
	if req.Content != nil {
		assignment.Content = *req.Content
	}

	if err := s.Repo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Update(assignmentID, userID uint, req AssignmentReq) (*model.Assignment, error) {
	assignment, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != nil {
		assignment.Title = *req.Title
	}
	if req.Content != nil {
		assignment.Content = *req.Content
	}
	if req.DateDue != nil {
		assignment.DateDue = *req.DateDue
	}

	if err := s.Repo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(assignmentID, userID uint) error {
	assignment, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		return err
	}
	if assignment.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(assignmentID)
}

func (s *AssignmentService) Get(assignmentID uint) (*model.Assignment, error) {
	return s.Repo.FindByID(assignmentID)
}

func (s *AssignmentService) ListByClassroom(classroomID uint) ([]model.Assignment, error) {
	return s.Repo.ListByClassroom(classroomID)
}

// UploadDocument 讲师上传作业附件
func (s *AssignmentService) UploadDocument(ctx context.Context, assignmentID, userID uint, file *multipart.FileHeader) (*model.Assignment, error) {
	assignment, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	url, err := s.storeFile(ctx, "assignments", file)
	if err != nil {
		return nil, err
	}

	assignment.DocumentURL = url
	if err := s.Repo.Update(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// SubmitWork 学生提交作业，每份作业至多一次。
// 院系是多租户边界：非本院系学生的提交直接拒绝。
func (s *AssignmentService) SubmitWork(ctx context.Context, assignmentID uint, student *model.User, file *multipart.FileHeader) (*model.AssignmentSubmission, error) {
	assignment, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	classroom, err := s.ClassroomRepo.FindByID(assignment.ClassroomID)
	if err != nil {
		return nil, err
	}
	if student.DepartmentID == nil || *student.DepartmentID != classroom.DepartmentID {
		return nil, util.ErrPermissionDenied
	}

	studentID := student.ID
	if _, err := s.Repo.FindSubmission(assignmentID, studentID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	url, err := s.storeFile(ctx, "submissions", file)
	if err != nil {
		return nil, err
	}

	submission := &model.AssignmentSubmission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FileURL:      url,
	}
	if err := s.Repo.CreateSubmission(submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}
	return submission, nil
}

// GradeSubmission 讲师评分
func (s *AssignmentService) GradeSubmission(submissionID, lecturerID uint, grade string) (*model.AssignmentSubmission, error) {
	submission, err := s.Repo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}

	assignment, err := s.Repo.FindByID(submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.OwnerID != lecturerID {
		return nil, util.ErrPermissionDenied
	}

	submission.Grade = grade
	submission.Graded = true
	if err := s.Repo.UpdateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) ListSubmissions(assignmentID, lecturerID uint) ([]model.AssignmentSubmission, error) {
	assignment, err := s.Repo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.OwnerID != lecturerID {
		return nil, util.ErrPermissionDenied
	}
	return s.Repo.ListSubmissions(assignmentID)
}

func (s *AssignmentService) storeFile(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	return s.Storage.Upload(ctx, objectName, src, file.Size, contentType)
}
