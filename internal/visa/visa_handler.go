package visa

import (
	"net/http"

	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/shared/response"
	"go-hiring/internal/storage"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("visa.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visa.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("visa request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	} else {
		h.logger.Warn("visa request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Upload accepts a multipart form with a single "file" part.
func (h *Handler) Upload(c *gin.Context) {
	actorID := getActorID(c)
	var uri DocumentTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.writeServiceError(c, workflowerrors.ErrUnsupportedDocumentType)
		return
	}
	docType := uri.Type
	h.logger.Debug("http upload document", zap.String("actor_id", actorID), zap.String("document_type", docType))

	fh, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, storage.ErrFileRequired)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.UploadDocument(c.Request.Context(), actorID, docType, storage.Upload{
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Body:         f,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetMyStatus(c *gin.Context) {
	resp, err := h.service.GetMyStatus(c.Request.Context(), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMyDocuments(c *gin.Context) {
	resp, err := h.service.ListMyDocuments(c.Request.Context(), getActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Review(c *gin.Context) {
	actorID := getActorID(c)
	employeeID := c.Param("employeeId")
	var uri DocumentTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.writeServiceError(c, workflowerrors.ErrUnsupportedDocumentType)
		return
	}
	docType := uri.Type
	h.logger.Debug("http review document",
		zap.String("actor_id", actorID),
		zap.String("employee_id", employeeID),
		zap.String("document_type", docType),
	)

	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http review document validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Status must be approved or rejected.", err.Error())
		return
	}

	resp, err := h.service.ReviewDocument(c.Request.Context(), actorID, employeeID, docType, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListInProgress(c *gin.Context) {
	resp, err := h.service.ListInProgress(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, response.SinglePage(len(resp)))
}

func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, response.SinglePage(len(resp)))
}

func (h *Handler) Notify(c *gin.Context) {
	actorID := getActorID(c)
	employeeID := c.Param("employeeId")

	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http notify employee validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Message is required.", err.Error())
		return
	}

	resp, err := h.service.Notify(c.Request.Context(), actorID, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
