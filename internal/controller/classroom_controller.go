package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
	AuthService      *service.AuthService
}

func NewClassroomController(classroomService *service.ClassroomService, authService *service.AuthService) *ClassroomController {
	return &ClassroomController{ClassroomService: classroomService, AuthService: authService}
}

// Create godoc
// @Summary 创建课堂
// @Tags 课堂
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ClassroomReq true "课堂信息"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response
// @Router /api/classrooms [post]
func (c *ClassroomController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ClassroomReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.Create(claims.UserID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.BadRequest(ctx, "department not found")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, classroom)
}

// Update godoc
// @Summary 更新课堂
// @Tags 课堂
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Param   body body service.ClassroomReq true "课堂字段"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 403 {object} util.Response "非课堂所有者"
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [put]
func (c *ClassroomController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ClassroomReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.Update(util.ParseID(ctx), claims.UserID, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// Delete godoc
// @Summary 删除课堂及其全部内容
// @Description 级联删除课堂下的帖子、会议、作业与测验
// @Tags 课堂
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/classrooms/{id} [delete]
func (c *ClassroomController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ClassroomService.Delete(util.ParseID(ctx), claims.UserID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Get godoc
// @Summary 课堂详情
// @Tags 课堂
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课堂ID"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) Get(ctx *gin.Context) {
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

	classroom, err := c.ClassroomService.Get(classroomID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// List godoc
// @Summary 课堂列表
// @Description 讲师返回自己创建的课堂，学生返回本院系课堂
// @Tags 课堂
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Classroom}
// @Router /api/classrooms [get]
func (c *ClassroomController) List(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	classrooms, err := c.ClassroomService.ListForUser(user)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, classrooms)
}
