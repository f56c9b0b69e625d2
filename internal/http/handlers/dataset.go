package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/knowledge-backend/internal/domain/faults"
	"github.com/yungbote/knowledge-backend/internal/http/response"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
	"github.com/yungbote/knowledge-backend/internal/usecases/datasets"
)

type DatasetHandler struct {
	log *logger.Logger
	uc  datasets.UseCases
}

func NewDatasetHandler(baseLog *logger.Logger, uc datasets.UseCases) *DatasetHandler {
	return &DatasetHandler{log: baseLog.With("handler", "DatasetHandler"), uc: uc}
}

type createDatasetRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	IsActive    *bool          `json:"is_active"`
}

type updateDatasetRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	IsActive    *bool          `json:"is_active"`
}

type listDatasetsQuery struct {
	pageQuery
	IsActive *bool `form:"is_active"`
}

// POST /api/v1/datasets
func (h *DatasetHandler) Create(c *gin.Context) {
	var req createDatasetRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	dataset, err := h.uc.Create.Execute(requestDB(c), datasets.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Metadata:    req.Metadata,
		IsActive:    req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "CreateDataset failed", err)
		return
	}
	response.RespondCreated(c, dataset)
}

// GET /api/v1/datasets
func (h *DatasetHandler) List(c *gin.Context) {
	var q listDatasetsQuery
	if !bindQuery(c, h.log, &q) {
		return
	}
	skip, limit := q.bounds()
	items, err := h.uc.List.Execute(requestDB(c), datasets.ListInput{Skip: skip, Limit: limit, IsActive: q.IsActive})
	if err != nil {
		fail(c, h.log, "ListDatasets failed", err)
		return
	}
	response.RespondList(c, items)
}

// GET /api/v1/datasets/:id
func (h *DatasetHandler) Get(c *gin.Context) {
	dataset, err := h.uc.Get.Execute(requestDB(c), c.Param("id"))
	if err != nil {
		fail(c, h.log, "GetDataset failed", err, "dataset_id", c.Param("id"))
		return
	}
	response.RespondOK(c, dataset)
}

// PUT|PATCH /api/v1/datasets/:id
func (h *DatasetHandler) Update(c *gin.Context) {
	var req updateDatasetRequest
	if !bindJSON(c, h.log, &req) {
		return
	}
	dataset, err := h.uc.Update.Execute(requestDB(c), c.Param("id"), datasets.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Metadata:    req.Metadata,
		IsActive:    req.IsActive,
	})
	if err != nil {
		fail(c, h.log, "UpdateDataset failed", err, "dataset_id", c.Param("id"))
		return
	}
	response.RespondOK(c, dataset)
}

// DELETE /api/v1/datasets/:id
func (h *DatasetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.uc.Delete.Execute(requestDB(c), id)
	if err != nil {
		fail(c, h.log, "DeleteDataset failed", err, "dataset_id", id)
		return
	}
	if !deleted {
		fail(c, h.log, "DeleteDataset failed", faults.NotFound("datasets.Delete", "dataset", id), "dataset_id", id)
		return
	}
	response.RespondNoContent(c)
}
