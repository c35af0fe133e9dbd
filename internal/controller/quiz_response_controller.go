package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuizResponseController struct {
	ResponseService  *service.QuizResponseService
	QuizService      *service.QuizService
	ClassroomService *service.ClassroomService
	AuthService      *service.AuthService
}

func NewQuizResponseController(responseService *service.QuizResponseService, quizService *service.QuizService, classroomService *service.ClassroomService, authService *service.AuthService) *QuizResponseController {
	return &QuizResponseController{ResponseService: responseService, QuizService: quizService, ClassroomService: classroomService, AuthService: authService}
}

// Submit godoc
// @Summary 提交测验作答
// @Description 学生对每道题勾选若干选项，整份作答连同得分在一个事务内落库。
// @Description 每名学生对每次测验至多一份作答，重复提交返回 409。
// @Description 仅限测验所属课堂院系的学生。
// @Tags 测验作答
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body []service.SelectionReq true "逐题勾选的选项字母"
// @Success 201 {object} util.Response{data=object} "作答已保存，返回得分"
// @Failure 403 {object} util.Response "测验不在可提交状态"
// @Failure 409 {object} util.Response "重复提交"
// @Failure 422 {object} util.Response "引用了不存在的题目或选项"
// @Router /api/quizzes/{id}/responses [post]
func (c *QuizResponseController) Submit(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var selections []service.SelectionReq
	if err := ctx.ShouldBindJSON(&selections); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.ResponseService.Submit(ctx.Request.Context(), util.ParseID(ctx), user, selections)
	if err != nil {
		monitoring.QuizSubmissionCounter.WithLabelValues(submissionResult(err)).Inc()
		respondServiceError(ctx, err)
		return
	}

	monitoring.QuizSubmissionCounter.WithLabelValues("accepted").Inc()
	util.Created(ctx, gin.H{
		"id":    response.ID,
		"score": response.Score,
	})
}

func submissionResult(err error) string {
	switch {
	case errors.Is(err, util.ErrDuplicateResponse), errors.Is(err, util.ErrSubmitInProgress):
		return "duplicate"
	case errors.Is(err, util.ErrQuizNotSubmittable):
		return "closed"
	case errors.Is(err, util.ErrInvalidAnswerReference):
		return "invalid"
	default:
		return "error"
	}
}

// MyResponse godoc
// @Summary 学生查看自己的作答与得分
// @Tags 测验作答
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response "尚未作答"
// @Router /api/quizzes/{id}/responses/mine [get]
func (c *QuizResponseController) MyResponse(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.ParseID(ctx)
	quiz, err := c.QuizService.GetQuiz(quizID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ok, err := c.ClassroomService.CanAccess(user, quiz.ClassroomID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}

	response, err := c.ResponseService.GetForStudent(quizID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, response)
}

// ListForReview godoc
// @Summary 讲师复查全部作答
// @Description 返回每名学生的得分与逐题勾选明细
// @Tags 测验作答
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizResponse}
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{id}/responses [get]
func (c *QuizResponseController) ListForReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.ParseID(ctx)
	quiz, err := c.QuizService.GetQuiz(quizID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if quiz.OwnerID != claims.UserID {
		util.Forbidden(ctx)
		return
	}

	responses, err := c.ResponseService.ListForReview(quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}
