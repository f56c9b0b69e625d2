package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/knowledge-backend/internal/http/response"
	"github.com/yungbote/knowledge-backend/internal/platform/apierr"
	"github.com/yungbote/knowledge-backend/internal/platform/ctxutil"
	"github.com/yungbote/knowledge-backend/internal/platform/dbctx"
	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// pageQuery is shared by every list endpoint.
type pageQuery struct {
	Skip  *int `form:"skip" binding:"omitempty,min=0"`
	Limit *int `form:"limit" binding:"omitempty,min=0"`
}

func (q pageQuery) bounds() (int, int) {
	skip, limit := 0, defaultLimit
	if q.Skip != nil {
		skip = *q.Skip
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

func requestDB(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// fail logs err and writes the mapped error response. Client faults are
// routine and log at debug.
func fail(c *gin.Context, log *logger.Logger, msg string, err error, kv ...interface{}) {
	fields := append([]interface{}{"error", err}, kv...)
	fields = append(fields, ctxutil.LogFields(c.Request.Context())...)
	if ae := apierr.From(err); ae != nil && ae.Status < http.StatusInternalServerError {
		log.Debug(msg, fields...)
	} else {
		log.Error(msg, fields...)
	}
	response.RespondAPIError(c, err)
}

func bindJSON(c *gin.Context, log *logger.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, log, "invalid request body", apierr.New(http.StatusBadRequest, "validation", err), "path", c.FullPath())
		return false
	}
	return true
}

func bindQuery(c *gin.Context, log *logger.Logger, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		fail(c, log, "invalid query", apierr.New(http.StatusBadRequest, "validation", err), "path", c.FullPath())
		return false
	}
	return true
}
