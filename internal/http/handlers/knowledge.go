package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/http/response"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/knowledges"
)

type KnowledgeHandler struct {
	log *logger.Logger
	uc  knowledges.UseCases
}

func NewKnowledgeHandler(baseLog *logger.Logger, uc knowledges.UseCases) *KnowledgeHandler {
	return &KnowledgeHandler{log: baseLog.With("handler", "KnowledgeHandler"), uc: uc}
}

type createKnowledgeRequest struct {
	DocumentID    string         `json:"document_id" binding:"required"`
	Sequence      *int           `json:"sequence" binding:"required,min=0"`
	KnowledgeText string         `json:"knowledge_text" binding:"required"`
	Metadata      map[string]any `json:"metadata"`
	IsActive      *bool          `json:"is_active"`
}

type updateKnowledgeRequest struct {
	Sequence      *int           `json:"sequence" binding:"omitempty,min=0"`
	KnowledgeText *string        `json:"knowledge_text"`
	Metadata      map[string]any `json:"metadata"`
	IsActive      *bool          `json:"is_active"`
}

type listKnowledgesQuery struct {
	pageQuery
	DocumentID string `form:"document_id" binding:"required"`
}

// POST /api/v1/knowledges
func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req createKnowledgeRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	knowledge, err := h.uc.Create.Execute(requestDB(c), knowledges.CreateInput{
		DocumentID:    req.DocumentID,
		Sequence:      *req.Sequence,
		KnowledgeText: req.KnowledgeText,
		Metadata:      req.Metadata,
		IsActive:      req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "CreateKnowledge failed", err, "document_id", req.DocumentID)
		return
	}
	response.RespondCreated(c, knowledge)
}

// GET /api/v1/knowledges?document_id=
func (h *KnowledgeHandler) List(c *gin.Context) {
	var q listKnowledgesQuery
	if !bindQuery(c, h.log, &q) {
		return
	}
	skip, limit := q.bounds()
	items, err := h.uc.List.Execute(requestDB(c), knowledges.ListInput{DocumentID: q.DocumentID, Skip: skip, Limit: limit})
	if err != nil {
		fail(c, h.log, "ListKnowledges failed", err, "document_id", q.DocumentID)
		return
	}
	response.RespondList(c, items)
}

// GET /api/v1/knowledges/:id
func (h *KnowledgeHandler) Get(c *gin.Context) {
	knowledge, err := h.uc.Get.Execute(requestDB(c), c.Param("id"))
	if err != nil {
		fail(c, h.log, "GetKnowledge failed", err, "knowledge_id", c.Param("id"))
		return
	}
	response.RespondOK(c, knowledge)
}

// PUT|PATCH /api/v1/knowledges/:id
func (h *KnowledgeHandler) Update(c *gin.Context) {
	var req updateKnowledgeRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	knowledge, err := h.uc.Update.Execute(requestDB(c), c.Param("id"), knowledges.UpdateInput{
		Sequence:      req.Sequence,
		KnowledgeText: req.KnowledgeText,
		Metadata:      req.Metadata,
		IsActive:      req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "UpdateKnowledge failed", err, "knowledge_id", c.Param("id"))
		return
	}
	response.RespondOK(c, knowledge)
}

// DELETE /api/v1/knowledges/:id
func (h *KnowledgeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.uc.Delete.Execute(requestDB(c), id)
	if err != nil {
		fail(c, h.log, "DeleteKnowledge failed", err, "knowledge_id", id)
		return
	}
	if !deleted {
		fail(c, h.log, "DeleteKnowledge failed", faults.NotFound("knowledges.Delete", "knowledge", id), "knowledge_id", id)
		return
	}
	response.RespondNoContent(c)
}
