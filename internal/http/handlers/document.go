package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/http/response"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/documents"
)

type DocumentHandler struct {
	log *logger.Logger
	uc  documents.UseCases
}

func NewDocumentHandler(baseLog *logger.Logger, uc documents.UseCases) *DocumentHandler {
	return &DocumentHandler{log: baseLog.With("handler", "DocumentHandler"), uc: uc}
}

type createDocumentRequest struct {
	// DatasetID is optional; a dataset is created when it is empty or unknown.
	DatasetID string         `json:"dataset_id"`
	Title     string         `json:"title" binding:"required"`
	Content   string         `json:"content" binding:"required"`
	Metadata  map[string]any `json:"metadata"`
	IsActive  *bool          `json:"is_active"`
}

type updateDocumentRequest struct {
	Title    *string        `json:"title"`
	Content  *string        `json:"content"`
	Metadata map[string]any `json:"metadata"`
	IsActive *bool          `json:"is_active"`
}

type listDocumentsQuery struct {
	pageQuery
	DatasetID string `form:"dataset_id" binding:"required"`
}

// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	document, err := h.uc.Create.Execute(requestDB(c), documents.CreateInput{
		DatasetID: req.DatasetID,
		Title:     req.Title,
		Content:   req.Content,
		Metadata:  req.Metadata,
		IsActive:  req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "CreateDocument failed", err, "dataset_id", req.DatasetID)
		return
	}
	response.RespondCreated(c, document)
}

// GET /api/v1/documents?dataset_id=
func (h *DocumentHandler) List(c *gin.Context) {
	var q listDocumentsQuery
	if !bindQuery(c, h.log, &q) {
		return
	}
	skip, limit := q.bounds()
	items, err := h.uc.List.Execute(requestDB(c), documents.ListInput{DatasetID: q.DatasetID, Skip: skip, Limit: limit})
	if err != nil {
		fail(c, h.log, "ListDocuments failed", err, "dataset_id", q.DatasetID)
		return
	}
	response.RespondList(c, items)
}

// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	document, err := h.uc.Get.Execute(requestDB(c), c.Param("id"))
	if err != nil {
		fail(c, h.log, "GetDocument failed", err, "document_id", c.Param("id"))
		return
	}
	response.RespondOK(c, document)
}

// PUT|PATCH /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	var req updateDocumentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	document, err := h.uc.Update.Execute(requestDB(c), c.Param("id"), documents.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Metadata: req.Metadata,
		IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "UpdateDocument failed", err, "document_id", c.Param("id"))
		return
	}
	response.RespondOK(c, document)
}

// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.uc.Delete.Execute(requestDB(c), id)
	if err != nil {
		fail(c, h.log, "DeleteDocument failed", err, "document_id", id)
		return
	}
	if !deleted {
		fail(c, h.log, "DeleteDocument failed", faults.NotFound("documents.Delete", "document", id), "document_id", id)
		return
	}
	response.RespondNoContent(c)
}
