package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/internal/service"
)

// CodexHandler 故事圣经 Handler
type CodexHandler struct {
	codexService service.CodexService
}

// NewCodexHandler 创建 Handler
func NewCodexHandler(codexService service.CodexService) *CodexHandler {
	return &CodexHandler{codexService: codexService}
}

// Create 在项目下创建条目
func (h *CodexHandler) Create(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req service.CreateCodexEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ProjectID = uint(projectID)

	entry, err := h.codexService.Create(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

// ListByProject 获取项目下的条目列表，?type= 按类别过滤
func (h *CodexHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	entries, err := h.codexService.ListByProject(c.Request.Context(), uint(projectID), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// Get 获取条目详情
func (h *CodexHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	entry, err := h.codexService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrCodexEntryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "codex entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// Update 更新条目
func (h *CodexHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateCodexEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.codexService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if err == service.ErrCodexEntryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "codex entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// Delete 删除条目
func (h *CodexHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.codexService.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrCodexEntryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "codex entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
