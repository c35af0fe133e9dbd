package service

import (
	"errors"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	DeptRepo *repository.DepartmentRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, deptRepo *repository.DepartmentRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		DeptRepo: deptRepo,
		Cfg:      cfg,
	}
}

type RegisterReq struct {
	Name         string         `json:"name" binding:"required"`
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required,min=8"`
	Gender       string         `json:"gender"`
	Role         model.UserRole `json:"role" binding:"required"`
	DepartmentID *uint          `json:"departmentId"`
}

func (s *AuthService) Register(req RegisterReq) (*model.User, error) {
	if req.Role != model.Student && req.Role != model.Lecturer {
		return nil, errors.New("role must be student or lecturer")
	}
	// 学生必须归属一个院系
	if req.Role == model.Student {
		if req.DepartmentID == nil {
			return nil, errors.New("departmentId is required for students")
		}
		if _, err := s.DeptRepo.FindByID(*req.DepartmentID); err != nil {
			return nil, err
		}
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Gender:   req.Gender,
		Role:     req.Role,
	}
	if req.Role == model.Student {
		user.DepartmentID = req.DepartmentID
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	s.UserRepo.UpdateLastLogin(user.ID)
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
