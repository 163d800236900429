package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/internal/service"
)

// WhiteboardHandler 白板 Handler
type WhiteboardHandler struct {
	whiteboardService service.WhiteboardService
}

// NewWhiteboardHandler 创建 Handler
func NewWhiteboardHandler(whiteboardService service.WhiteboardService) *WhiteboardHandler {
	return &WhiteboardHandler{whiteboardService: whiteboardService}
}

// Create 在项目画布上创建元素
func (h *WhiteboardHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req service.CreateWhiteboardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ProjectID = uint(projectID)

	item, err := h.whiteboardService.Create(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// ListByProject 获取项目画布的元素列表
func (h *WhiteboardHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	items, err := h.whiteboardService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Get 获取元素详情
func (h *WhiteboardHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	item, err := h.whiteboardService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrWhiteboardItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "whiteboard item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// Update 更新元素，拖动位置保存也走这里
func (h *WhiteboardHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateWhiteboardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.whiteboardService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if err == service.ErrWhiteboardItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "whiteboard item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// Delete 删除元素
func (h *WhiteboardHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.whiteboardService.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrWhiteboardItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "whiteboard item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
