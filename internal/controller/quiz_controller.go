package controller

import (
	"time"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService      *service.QuizService
	ClassroomService *service.ClassroomService
	AuthService      *service.AuthService
}

func NewQuizController(quizService *service.QuizService, classroomService *service.ClassroomService, authService *service.AuthService) *QuizController {
	return &QuizController{QuizService: quizService, ClassroomService: classroomService, AuthService: authService}
}

// Create godoc
// @Summary 创建测验
// @Description 同一课堂内标题唯一，生命周期由 start 与 duration 推导
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Param   body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 409 {object} util.Response "标题重复"
// @Router /api/classrooms/{id}/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, util.ParseID(ctx), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Update godoc
// @Summary 更新测验设置
// @Description 标题、时间窗与开关可随时调整，不受出题冻结影响
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body service.QuizReq true "测验字段"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 409 {object} util.Response "标题重复"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quizID := util.ParseID(ctx)
	if !c.ownsQuiz(ctx, quizID, claims.UserID) {
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(quizID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除测验
// @Description 级联删除题目、选项与全部作答记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.ParseID(ctx)
	if !c.ownsQuiz(ctx, quizID, claims.UserID) {
		return
	}

	if err := c.QuizService.DeleteQuiz(quizID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary 测验详情（讲师视角）
// @Description 返回测验设置、当前状态与带 correct 标志的完整题目
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
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

	questions, err := c.QuizService.ListQuestions(quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	canAuthor, err := c.QuizService.CanAuthor(quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"quiz":      quiz,
		"state":     quiz.State(time.Now()),
		"questions": questions,
		"canAuthor": canAuthor,
	})
}

// List godoc
// @Summary 课堂测验列表
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/classrooms/{id}/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	classroomID := util.ParseID(ctx)
	ok, err := c.ClassroomService.CanAccess(user, classroomID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}

	quizzes, err := c.QuizService.ListByClassroom(classroomID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// ReplaceQuestions godoc
// @Summary 整体替换测验题目
// @Description 题目与选项一次性全量写入，原有题目被替换。
// @Description 测验一旦有作答记录即冻结，返回 409。
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body []service.QuestionReq true "题目列表"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion}
// @Failure 409 {object} util.Response "出题已冻结"
// @Router /api/quizzes/{id}/questions [put]
func (c *QuizController) ReplaceQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var reqs []service.QuestionReq
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quizID := util.ParseID(ctx)
	if !c.ownsQuiz(ctx, quizID, claims.UserID) {
		return
	}

	questions, err := c.QuizService.ReplaceQuestions(quizID, reqs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// TakeQuiz godoc
// @Summary 学生获取题面
// @Description 仅限测验所属课堂院系的学生；未开始的测验返回 403，已到期仅在允许补交时放行。
// @Description 题面不含 correct 标志。
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=service.StudentQuizView}
// @Failure 403 {object} util.Response
// @Router /api/quizzes/{id}/paper [get]
func (c *QuizController) TakeQuiz(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.QuizService.GetQuizForStudent(ctx.Request.Context(), util.ParseID(ctx), user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ownsQuiz 写操作只允许测验创建者；失败时已写入响应
func (c *QuizController) ownsQuiz(ctx *gin.Context, quizID, userID uint) bool {
	quiz, err := c.QuizService.GetQuiz(quizID)
	if err != nil {
		respondServiceError(ctx, err)
		return false
	}
	if quiz.OwnerID != userID {
		util.Forbidden(ctx)
		return false
	}
	return true
}
