package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type ClassroomService struct {
	Repo     *repository.ClassroomRepository
	UserRepo *repository.UserRepository
	DeptRepo *repository.DepartmentRepository
}

func NewClassroomService(repo *repository.ClassroomRepository, userRepo *repository.UserRepository, deptRepo *repository.DepartmentRepository) *ClassroomService {
	return &ClassroomService{Repo: repo, UserRepo: userRepo, DeptRepo: deptRepo}
}

type ClassroomReq struct {
	Name         *string `json:"name"`
	Subtitle     *string `json:"subtitle"`
	Description  *string `json:"description"`
	DepartmentID *uint   `json:"departmentId"`
	HeaderImg    *string `json:"headerImg"`
}

func (s *ClassroomService) Create(ownerID uint, req ClassroomReq) (*model.Classroom, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.DepartmentID == nil {
		return nil, errors.New("departmentId is required")
	}
	if _, err := s.DeptRepo.FindByID(*req.DepartmentID); err != nil {
		return nil, err
	}

	classroom := &model.Classroom{
		OwnerID:      ownerID,
		DepartmentID: *req.DepartmentID,
		Name:         *req.Name,
	}
	if req.Subtitle != nil {
		classroom.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		classroom.Description = *req.Description
	}
	if req.HeaderImg != nil {
		classroom.HeaderImg = *req.HeaderImg
	}

	if err := s.Repo.Create(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Update(classroomID, userID uint, req ClassroomReq) (*model.Classroom, error) {
	classroom, err := s.Repo.FindByID(classroomID)
	if err != nil {
		return nil, err
	}
	if classroom.OwnerID != userID {
		return nil, util.ErrPermissionDenied
	}

	if req.Name != nil {
		classroom.Name = *req.Name
	}
	if req.Subtitle != nil {
		classroom.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		classroom.Description = *req.Description
	}
	if req.HeaderImg != nil {
		classroom.HeaderImg = *req.HeaderImg
	}

	if err := s.Repo.Update(classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Delete(classroomID, userID uint) error {
	classroom, err := s.Repo.FindByID(classroomID)
	if err != nil {
		return err
	}
	if classroom.OwnerID != userID {
		return util.ErrPermissionDenied
	}
	return s.Repo.Delete(classroomID)
}

func (s *ClassroomService) Get(classroomID uint) (*model.Classroom, error) {
	return s.Repo.FindByID(classroomID)
}

// ListForUser 按显式角色分派：讲师看自己创建的课堂，
// 学生看本院系的全部课堂。
func (s *ClassroomService) ListForUser(user *model.User) ([]model.Classroom, error) {
	switch {
	case user.IsLecturer():
		return s.Repo.ListByOwner(user.ID)
	case user.IsStudent():
		if user.DepartmentID == nil {
			return nil, nil
		}
		return s.Repo.ListByDepartment(*user.DepartmentID)
	default:
		return nil, util.ErrPermissionDenied
	}
}

// CanAccess 成员资格检查：课堂属于讲师本人，或学生与课堂同院系
func (s *ClassroomService) CanAccess(user *model.User, classroomID uint) (bool, error) {
	classroom, err := s.Repo.FindByID(classroomID)
	if err != nil {
		return false, err
	}
	if user.Role == model.Admin {
		return true, nil
	}
	if user.IsLecturer() {
		return classroom.OwnerID == user.ID, nil
	}
	if user.IsStudent() && user.DepartmentID != nil {
		return classroom.DepartmentID == *user.DepartmentID, nil
	}
	return false, nil
}
