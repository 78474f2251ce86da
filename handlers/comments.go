package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shadighanaat/DRF-store/models"
	"github.com/shadighanaat/DRF-store/services"
)

type commentRequest struct {
	Name   string               `json:"name" binding:"required,max=255"`
	Body   string               `json:"body" binding:"required"`
	Status models.CommentStatus `json:"status"`
}

func (r commentRequest) input() services.CommentInput {
	return services.CommentInput{Name: r.Name, Body: r.Body, Status: r.Status}
}

func (h *Handler) ListComments(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := h.svc.Comments.List(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		results = append(results, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetComment(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	comment, err := h.svc.Comments.Get(c.Request.Context(), productID, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(*comment))
}

func (h *Handler) CreateComment(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	comment, err := h.svc.Comments.Create(c.Request.Context(), productID, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(*comment))
}

func (h *Handler) UpdateComment(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	comment, err := h.svc.Comments.Update(c.Request.Context(), productID, id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentResponse(*comment))
}

func (h *Handler) DeleteComment(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	if err := h.svc.Comments.Delete(c.Request.Context(), productID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
