package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/internal/service"
)

// OutlineHandler 大纲树 Handler
type OutlineHandler struct {
	outlineService service.OutlineService
}

// NewOutlineHandler 创建 Handler
func NewOutlineHandler(outlineService service.OutlineService) *OutlineHandler {
	return &OutlineHandler{outlineService: outlineService}
}

// Create 在项目下创建节点
func (h *OutlineHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req service.CreateOutlineNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ProjectID = uint(projectID)

	node, err := h.outlineService.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case service.ErrProjectNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case service.ErrInvalidOutlineMove:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent node"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": node})
}

// ListByProject 获取项目下的节点列表
func (h *OutlineHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	nodes, err := h.outlineService.ListByProject(c.Request.Context(), uint(projectID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": nodes})
}

// ListChildren 获取节点的直接子节点
func (h *OutlineHandler) ListChildren(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	children, err := h.outlineService.ListChildren(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrOutlineNodeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "outline node not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": children})
}

// Get 获取节点详情
func (h *OutlineHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	node, err := h.outlineService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrOutlineNodeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "outline node not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": node})
}

// Update 更新节点，含移动到新父节点
func (h *OutlineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateOutlineNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := h.outlineService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		switch err {
		case service.ErrOutlineNodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "outline node not found"})
		case service.ErrInvalidOutlineMove:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent node"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": node})
}

// Delete 删除节点及其子树
func (h *OutlineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.outlineService.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrOutlineNodeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "outline node not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
