package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/internal/service"
)

// PlotTemplateHandler 情节模板 Handler，目录只读
type PlotTemplateHandler struct {
	templateService service.PlotTemplateService
}

// NewPlotTemplateHandler 创建 Handler
func NewPlotTemplateHandler(templateService service.PlotTemplateService) *PlotTemplateHandler {
	return &PlotTemplateHandler{templateService: templateService}
}

// List 获取模板列表
func (h *PlotTemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// Get 获取模板详情（含有序环节定义）
func (h *PlotTemplateHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrTemplateNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "plot template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": template})
}
