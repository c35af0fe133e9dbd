package service

import (
	"context"
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type QuizResponseService struct {
	Repo          *repository.QuizResponseRepository
	QuizRepo      *repository.QuizRepository
	ClassroomRepo *repository.ClassroomRepository
	Locker        SubmissionLocker
}

func NewQuizResponseService(repo *repository.QuizResponseRepository, quizRepo *repository.QuizRepository, classroomRepo *repository.ClassroomRepository, locker SubmissionLocker) *QuizResponseService {
	return &QuizResponseService{Repo: repo, QuizRepo: quizRepo, ClassroomRepo: classroomRepo, Locker: locker}
}

// SelectionReq 学生在某道题上勾选的字母子集。
// 未勾选的选项不提交也不落库。
type SelectionReq struct {
	Number  int      `json:"number" binding:"required"`
	Letters []string `json:"letters"`
}

// Submit 持久化一名学生对一次测验的完整作答并评分。
// 院系是多租户边界：非本院系学生的提交直接拒绝。
// 整棵作答树和得分在同一事务内落库：要么全部成功，要么什么都不留。
func (s *QuizResponseService) Submit(ctx context.Context, quizID uint, student *model.User, selections []SelectionReq) (*model.QuizResponse, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	classroom, err := s.ClassroomRepo.FindByID(quiz.ClassroomID)
	if err != nil {
		return nil, err
	}
	if student.DepartmentID == nil || *student.DepartmentID != classroom.DepartmentID {
		return nil, util.ErrPermissionDenied
	}

	if !quiz.Submittable(time.Now()) {
		return nil, util.ErrQuizNotSubmittable
	}

	studentID := student.ID
	if s.Locker != nil {
		ok, err := s.Locker.Acquire(ctx, quizID, studentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, util.ErrSubmitInProgress
		}
		defer s.Locker.Release(ctx, quizID, studentID)
	}

	if _, err := s.Repo.FindByQuizAndStudent(quizID, studentID); err == nil {
		return nil, util.ErrDuplicateResponse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]*model.QuizQuestion, len(questions))
	correctTotal := 0
	for i := range questions {
		byNumber[questions[i].Number] = &questions[i]
		for _, a := range questions[i].Answers {
			if a.Correct {
				correctTotal++
			}
		}
	}

	response := &model.QuizResponse{
		QuizID:    quizID,
		StudentID: studentID,
	}

	correctSelected := 0
	incorrectSelected := 0
	for _, sel := range selections {
		question, ok := byNumber[sel.Number]
		if !ok {
			return nil, util.ErrInvalidAnswerReference
		}

		rq := model.QuizResponseQuestion{QuestionID: question.ID}
		for _, letter := range sel.Letters {
			answer := findAnswerByLetter(question, letter)
			if answer == nil {
				return nil, util.ErrInvalidAnswerReference
			}
			rq.Selected = append(rq.Selected, model.QuizResponseAnswer{AnswerID: answer.ID})
			if answer.Correct {
				correctSelected++
			} else {
				incorrectSelected++
			}
		}
		response.Questions = append(response.Questions, rq)
	}

	response.Score = ComputeQuizScore(correctTotal, correctSelected, incorrectSelected)

	if err := s.Repo.CreateTree(response); err != nil {
		return nil, err
	}
	return response, nil
}

func findAnswerByLetter(question *model.QuizQuestion, letter string) *model.QuizAnswer {
	for i := range question.Answers {
		if question.Answers[i].Letter == letter {
			return &question.Answers[i]
		}
	}
	return nil
}

// GetForStudent 返回学生自己的作答（含得分）
func (s *QuizResponseService) GetForStudent(quizID, studentID uint) (*model.QuizResponse, error) {
	response, err := s.Repo.FindByQuizAndStudent(quizID, studentID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByID(response.ID)
}

// ListForReview 讲师复查：某次测验的全部作答及勾选明细
func (s *QuizResponseService) ListForReview(quizID uint) ([]model.QuizResponse, error) {
	return s.Repo.ListByQuiz(quizID)
}
