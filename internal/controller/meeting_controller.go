package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	MeetingService   *service.MeetingService
	ClassroomService *service.ClassroomService
	AuthService      *service.AuthService
}

func NewMeetingController(meetingService *service.MeetingService, classroomService *service.ClassroomService, authService *service.AuthService) *MeetingController {
	return &MeetingController{MeetingService: meetingService, ClassroomService: classroomService, AuthService: authService}
}

// Create godoc
// @Summary 安排课堂会议
// @Tags 会议
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Param   body body service.MeetingReq true "会议信息"
// @Success 201 {object} util.Response{data=model.Meeting}
// @Router /api/classrooms/{id}/meetings [post]
func (c *MeetingController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MeetingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Create(claims.UserID, util.ParseID(ctx), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, meeting)
}

// Update godoc
// @Summary 更新会议
// @Tags 会议
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会议ID"
// @Param   body body service.MeetingReq true "会议字段"
// @Success 200 {object} util.Response{data=model.Meeting}
// @Failure 403 {object} util.Response
// @Router /api/meetings/{id} [put]
func (c *MeetingController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.MeetingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	meeting, err := c.MeetingService.Update(util.ParseID(ctx), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, meeting)
}

// Delete godoc
// @Summary 删除会议
// @Tags 会议
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会议ID"
// @Success 200 {object} util.Response
// @Router /api/meetings/{id} [delete]
func (c *MeetingController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.MeetingService.Delete(util.ParseID(ctx), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 课堂会议列表
// @Tags 会议
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response{data=[]model.Meeting}
// @Router /api/classrooms/{id}/meetings [get]
func (c *MeetingController) List(ctx *gin.Context) {
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

	meetings, err := c.MeetingService.ListByClassroom(classroomID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, meetings)
}
