package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/internal/service"
)

// PlotStructureHandler 情节结构 Handler，覆盖实例与环节
type PlotStructureHandler struct {
	structureService service.PlotStructureService
	sectionService   service.PlotSectionService
}

// NewPlotStructureHandler 创建 Handler
func NewPlotStructureHandler(
	structureService service.PlotStructureService,
	sectionService service.PlotSectionService,
) *PlotStructureHandler {
	return &PlotStructureHandler{
		structureService: structureService,
		sectionService:   sectionService,
	}
}

// Instantiate 套用模板，实例与环节一次性生成
func (h *PlotStructureHandler) Instantiate(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req service.InstantiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ProjectID = uint(projectID)

	structure, err := h.structureService.Instantiate(c.Request.Context(), req)
	if err != nil {
		switch err {
		case service.ErrProjectNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case service.ErrTemplateNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "plot template not found"})
		case service.ErrInvalidTemplate:
			c.JSON(http.StatusBadRequest, gin.H{"error": "plot template has invalid section definitions"})
		case service.ErrInvalidParent:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent structure"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": structure})
}

// ListByProject 获取项目下的实例列表
func (h *PlotStructureHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	structures, err := h.structureService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": structures})
}

// Get 获取实例详情（含有序环节）
func (h *PlotStructureHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	structure, err := h.structureService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrPlotStructureNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot structure not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": structure})
}

// Update 更新实例，TemplateID 不可变更
func (h *PlotStructureHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdatePlotStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	structure, err := h.structureService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if err == service.ErrPlotStructureNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot structure not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": structure})
}

// Delete 删除实例，级联删除全部环节
func (h *PlotStructureHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.structureService.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrPlotStructureNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot structure not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSections 获取实例下的环节列表
func (h *PlotStructureHandler) ListSections(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sections, err := h.sectionService.ListByStructure(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrPlotStructureNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot structure not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sections})
}

// UpdateSection 部分更新环节内容，防抖自动保存的落点
func (h *PlotStructureHandler) UpdateSection(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdatePlotSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if err == service.ErrPlotSectionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": section})
}
