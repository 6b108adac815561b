package visa_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hiring/internal/employee"
	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/storage"
	"go-hiring/internal/visa"
	workflowerrors "go-hiring/internal/workflow/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeVisaService struct {
	uploadFn     func(ctx context.Context, actorID, docType string, upload storage.Upload) (visa.DocumentResponse, error)
	statusFn     func(ctx context.Context, actorID string) (visa.StatusResponse, error)
	documentsFn  func(ctx context.Context, actorID string) ([]employee.Document, error)
	reviewFn     func(ctx context.Context, actorID, employeeID, docType string, req visa.ReviewDocumentRequest) (visa.DocumentResponse, error)
	inProgressFn func(ctx context.Context) ([]visa.InProgressSummary, error)
	allFn        func(ctx context.Context) ([]visa.VisaSummary, error)
	notifyFn     func(ctx context.Context, actorID, employeeID string, req visa.NotifyRequest) (visa.NotificationResponse, error)
}

func (f *fakeVisaService) UploadDocument(ctx context.Context, actorID, docType string, upload storage.Upload) (visa.DocumentResponse, error) {
	return f.uploadFn(ctx, actorID, docType, upload)
}
func (f *fakeVisaService) GetMyStatus(ctx context.Context, actorID string) (visa.StatusResponse, error) {
	return f.statusFn(ctx, actorID)
}
func (f *fakeVisaService) ListMyDocuments(ctx context.Context, actorID string) ([]employee.Document, error) {
	return f.documentsFn(ctx, actorID)
}
func (f *fakeVisaService) ReviewDocument(ctx context.Context, actorID, employeeID, docType string, req visa.ReviewDocumentRequest) (visa.DocumentResponse, error) {
	return f.reviewFn(ctx, actorID, employeeID, docType, req)
}
func (f *fakeVisaService) ListInProgress(ctx context.Context) ([]visa.InProgressSummary, error) {
	return f.inProgressFn(ctx)
}
func (f *fakeVisaService) ListAll(ctx context.Context) ([]visa.VisaSummary, error) {
	return f.allFn(ctx)
}
func (f *fakeVisaService) Notify(ctx context.Context, actorID, employeeID string, req visa.NotifyRequest) (visa.NotificationResponse, error) {
	return f.notifyFn(ctx, actorID, employeeID, req)
}

func newTestRouter(svc visa.Service, actorID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init(visa.DocumentTypeRule)
	h := visa.NewHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", actorID)
		c.Next()
	})
	r.GET("/visa/status", h.GetMyStatus)
	r.GET("/visa/documents", h.ListMyDocuments)
	r.POST("/visa/documents/:type", h.Upload)
	r.GET("/hr/visa/in-progress", h.ListInProgress)
	r.GET("/hr/visa/all", h.ListAll)
	r.PATCH("/hr/visa/documents/:employeeId/:type", h.Review)
	r.POST("/hr/visa/notify/:employeeId", h.Notify)
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestVisaHandler_Upload(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("streams the file to the service", func(t *testing.T) {
		svc := &fakeVisaService{
			uploadFn: func(_ context.Context, gotActor, docType string, upload storage.Upload) (visa.DocumentResponse, error) {
				assert.Equal(t, actorID, gotActor)
				assert.Equal(t, "opt_receipt", docType)
				assert.Equal(t, "receipt.pdf", upload.OriginalName)
				data, err := io.ReadAll(upload.Body)
				require.NoError(t, err)
				assert.Equal(t, "%PDF-1.4", string(data))
				return visa.DocumentResponse{EmployeeID: gotActor, CurrentStep: "opt_receipt"}, nil
			},
		}
		body, contentType := multipartBody(t, "file", "receipt.pdf", "%PDF-1.4")
		req := httptest.NewRequest(http.MethodPost, "/visa/documents/opt_receipt", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(svc, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeEnvelope(t, w.Body.Bytes()).Ok)
	})

	t.Run("missing file part", func(t *testing.T) {
		body, contentType := multipartBody(t, "other", "x.pdf", "x")
		req := httptest.NewRequest(http.MethodPost, "/visa/documents/opt_receipt", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(&fakeVisaService{}, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, storage.ErrFileRequired.Message, env.Error.Message)
	})

	t.Run("prerequisite failure carries the missing step", func(t *testing.T) {
		svc := &fakeVisaService{
			uploadFn: func(context.Context, string, string, storage.Upload) (visa.DocumentResponse, error) {
				return visa.DocumentResponse{}, workflowerrors.NewPrerequisiteError("opt_receipt", "OPT Receipt")
			},
		}
		body, contentType := multipartBody(t, "file", "ead.pdf", "%PDF")
		req := httptest.NewRequest(http.MethodPost, "/visa/documents/opt_ead", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(svc, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "PREREQUISITE_NOT_MET", env.Error.Code)
		assert.JSONEq(t, `{"missing_step":"opt_receipt","label":"OPT Receipt"}`, string(env.Error.Details))
	})
}

func TestVisaHandler_UnknownDocumentType(t *testing.T) {
	body, contentType := multipartBody(t, "file", "x.pdf", "%PDF")
	req := httptest.NewRequest(http.MethodPost, "/visa/documents/passport", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newTestRouter(&fakeVisaService{}, uuid.New().String()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, workflowerrors.ErrUnsupportedDocumentType.Message, env.Error.Message)
}

func TestVisaHandler_Review(t *testing.T) {
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeVisaService{
			reviewFn: func(_ context.Context, gotActor, gotEmployee, docType string, req visa.ReviewDocumentRequest) (visa.DocumentResponse, error) {
				assert.Equal(t, actorID, gotActor)
				assert.Equal(t, employeeID, gotEmployee)
				assert.Equal(t, "opt_ead", docType)
				assert.Equal(t, "rejected", req.Status)
				return visa.DocumentResponse{EmployeeID: gotEmployee, CurrentStep: "opt_ead"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPatch, "/hr/visa/documents/"+employeeID+"/opt_ead",
			strings.NewReader(`{"status":"rejected","feedback":"expired"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(svc, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid status never reaches the service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/hr/visa/documents/"+employeeID+"/opt_ead",
			strings.NewReader(`{"status":"maybe"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(&fakeVisaService{}, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("already reviewed conflicts", func(t *testing.T) {
		svc := &fakeVisaService{
			reviewFn: func(context.Context, string, string, string, visa.ReviewDocumentRequest) (visa.DocumentResponse, error) {
				return visa.DocumentResponse{}, workflowerrors.ErrDocumentNotPending
			},
		}
		req := httptest.NewRequest(http.MethodPatch, "/hr/visa/documents/"+employeeID+"/opt_ead",
			strings.NewReader(`{"status":"approved"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(svc, actorID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestVisaHandler_Lists(t *testing.T) {
	days := 3
	svc := &fakeVisaService{
		statusFn: func(context.Context, string) (visa.StatusResponse, error) {
			return visa.StatusResponse{RequiresOPT: true, CurrentStep: "opt_receipt", Action: "upload"}, nil
		},
		documentsFn: func(context.Context, string) ([]employee.Document, error) {
			return []employee.Document{{Type: employee.DocDriversLicense}}, nil
		},
		inProgressFn: func(context.Context) ([]visa.InProgressSummary, error) {
			return []visa.InProgressSummary{{Name: "Jane Doe", DaysRemaining: &days}}, nil
		},
		allFn: func(context.Context) ([]visa.VisaSummary, error) {
			return []visa.VisaSummary{}, nil
		},
	}
	r := newTestRouter(svc, uuid.New().String())

	tests := []struct {
		path     string
		contains string
	}{
		{"/visa/status", `"current_step":"opt_receipt"`},
		{"/visa/documents", `"type":"drivers_license"`},
		{"/hr/visa/in-progress", `"days_remaining":3`},
		{"/hr/visa/all", `"data":[]`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestVisaHandler_Notify(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("message is required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hr/visa/notify/"+employeeID, strings.NewReader(`{"subject":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(&fakeVisaService{}, uuid.New().String()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeVisaService{
			notifyFn: func(_ context.Context, _, gotEmployee string, req visa.NotifyRequest) (visa.NotificationResponse, error) {
				assert.Equal(t, employeeID, gotEmployee)
				return visa.NotificationResponse{EmployeeID: gotEmployee, Subject: visa.DefaultNotifySubject, Message: req.Message}, nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/hr/visa/notify/"+employeeID, strings.NewReader(`{"message":"Upload your I-983"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newTestRouter(svc, uuid.New().String()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Visa Status Update")
	})
}
