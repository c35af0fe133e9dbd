package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DepartmentController struct {
	DepartmentService *service.DepartmentService
}

func NewDepartmentController(departmentService *service.DepartmentService) *DepartmentController {
	return &DepartmentController{DepartmentService: departmentService}
}

type BatchRequest struct {
	Year string `json:"year" binding:"required"`
}

// CreateBatch godoc
// @Summary 创建年级批次
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body BatchRequest true "批次年份"
// @Success 201 {object} util.Response{data=model.Batch}
// @Failure 409 {object} util.Response "批次已存在"
// @Router /api/batches [post]
func (c *DepartmentController) CreateBatch(ctx *gin.Context) {
	var req BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	batch, err := c.DepartmentService.CreateBatch(req.Year)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Conflict(ctx, "该年份批次已存在")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, batch)
}

// ListBatches godoc
// @Summary 批次列表
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Batch}
// @Router /api/batches [get]
func (c *DepartmentController) ListBatches(ctx *gin.Context) {
	batches, err := c.DepartmentService.ListBatches()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, batches)
}

// CreateDepartment godoc
// @Summary 创建院系
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.DepartmentReq true "院系信息"
// @Success 201 {object} util.Response{data=model.Department}
// @Failure 409 {object} util.Response "同批次下院系名重复"
// @Router /api/departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req service.DepartmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dept, err := c.DepartmentService.Create(req)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Conflict(ctx, "同批次下院系名称重复")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, dept)
}

// ListDepartments godoc
// @Summary 院系列表
// @Tags 院系
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Department}
// @Router /api/departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	departments, err := c.DepartmentService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, departments)
}
