package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
	ClassroomService  *service.ClassroomService
	AuthService       *service.AuthService
}

func NewAssignmentController(assignmentService *service.AssignmentService, classroomService *service.ClassroomService, authService *service.AuthService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService, ClassroomService: classroomService, AuthService: authService}
}

// Create godoc
// @Summary 布置作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Param   body body service.AssignmentReq true "作业信息"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/classrooms/{id}/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Create(claims.UserID, util.ParseID(ctx), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, assignment)
}

// Update godoc
// @Summary 更新作业
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Param   body body service.AssignmentReq true "作业字段"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 403 {object} util.Response
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AssignmentService.Update(util.ParseID(ctx), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// Delete godoc
// @Summary 删除作业
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AssignmentService.Delete(util.ParseID(ctx), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary 作业详情
// @Description 仅限作业所属课堂的成员（讲师本人或同院系学生）
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	assignment, err := c.AssignmentService.Get(util.ParseID(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ok, err := c.ClassroomService.CanAccess(user, assignment.ClassroomID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if !ok {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, assignment)
}

// List godoc
// @Summary 课堂作业列表
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/classrooms/{id}/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
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

	assignments, err := c.AssignmentService.ListByClassroom(classroomID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// UploadDocument godoc
// @Summary 上传作业附件
// @Tags 作业
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Param   file formData file true "附件文件"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Router /api/assignments/{id}/document [post]
func (c *AssignmentController) UploadDocument(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	assignment, err := c.AssignmentService.UploadDocument(ctx.Request.Context(), util.ParseID(ctx), claims.UserID, file)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// SubmitWork godoc
// @Summary 学生提交作业
// @Description 每名学生对每份作业至多提交一次；仅限作业所属课堂院系的学生
// @Tags 作业
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Param   file formData file true "作答文件"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 409 {object} util.Response "重复提交"
// @Router /api/assignments/{id}/submissions [post]
func (c *AssignmentController) SubmitWork(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	submission, err := c.AssignmentService.SubmitWork(ctx.Request.Context(), util.ParseID(ctx), user, file)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}

type GradeRequest struct {
	Grade string `json:"grade" binding:"required"`
}

// GradeSubmission godoc
// @Summary 评分
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "提交ID"
// @Param   body body GradeRequest true "成绩"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 403 {object} util.Response
// @Router /api/submissions/{id}/grade [put]
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.GradeSubmission(util.ParseID(ctx), claims.UserID, req.Grade)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// ListSubmissions godoc
// @Summary 作业提交列表
// @Tags 作业
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /api/assignments/{id}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.AssignmentService.ListSubmissions(util.ParseID(ctx), claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}
