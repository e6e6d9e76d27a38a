package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-video-analyzer/backend/internal/mocks"
	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/service"
)

const testMaxUpload int64 = 1 << 20

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAnalyzeRouter(svc service.IAnalysisService) *gin.Engine {
	router := gin.New()
	NewAnalyzeHandler(svc).RegisterRoutes(router)
	return router
}

func stubRouter() *gin.Engine {
	return setupAnalyzeRouter(service.NewAnalysisService(service.NewStubAnalyzer(), testMaxUpload))
}

// multipartBody builds a form with a single part. An empty fileName writes a plain field.
func multipartBody(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if fileName == "" {
		require.NoError(t, w.WriteField(field, string(content)))
	} else {
		part, err := w.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestAnalyze_StubSuccess(t *testing.T) {
	body, contentType := multipartBody(t, "file", "pasta.mp4", make([]byte, 2048))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	stubRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "Video analysis endpoint ready. Backend deployment required for full functionality.",
		"fileSize": 2048,
		"fileName": "pasta.mp4"
	}`, rr.Body.String())
}

func TestAnalyze_MissingFile(t *testing.T) {
	tests := []struct {
		name        string
		body        io.Reader
		contentType string
	}{
		{"other field", nil, ""},
		{"empty form", strings.NewReader("--xyz--\r\n"), "multipart/form-data; boundary=xyz"},
	}
	plain, plainType := multipartBody(t, "file", "", []byte("not a file"))
	tests[0].body, tests[0].contentType = plain, plainType

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", tt.body)
			req.Header.Set("Content-Type", tt.contentType)
			rr := httptest.NewRecorder()

			stubRouter().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"status":"error","error":"No file provided"}`, rr.Body.String())
		})
	}
}

func TestAnalyze_MalformedUpload(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"not multipart", `{"file":"x"}`, "application/json"},
		{"no body", "", "multipart/form-data; boundary=xyz"},
		{"garbage body", "this is not a multipart body", "multipart/form-data; boundary=xyz"},
		{"truncated part", "--xyz\r\nContent-Disposition: form-data; name=\"file\"; filename=\"a.mp4\"\r\n\r\npartial data", "multipart/form-data; boundary=xyz"},
		{"bad part header", "--xyz\r\nnot a header line\r\n\r\ndata\r\n--xyz--\r\n", "multipart/form-data; boundary=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockAnalysisService)
			svc.On("MaxUploadBytes").Return(testMaxUpload)

			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rr := httptest.NewRecorder()

			setupAnalyzeRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			out := decode(t, rr)
			assert.Equal(t, "error", out["status"])
			assert.Contains(t, out["error"], "failed to parse upload")
			svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
			svc.AssertNotCalled(t, "RecordRejection", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAnalyze_FileAtLimitIsRejected(t *testing.T) {
	body, contentType := multipartBody(t, "file", "big.mp4", make([]byte, testMaxUpload))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	stubRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"error","error":"File too large. Maximum size is 1MB."}`, rr.Body.String())
}

func TestAnalyze_FileJustUnderLimitIsAccepted(t *testing.T) {
	body, contentType := multipartBody(t, "file", "ok.mp4", make([]byte, testMaxUpload-1))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	stubRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(testMaxUpload-1), decode(t, rr)["fileSize"])
}

func TestAnalyze_OversizedStreamIsRejected(t *testing.T) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		part, err := w.CreateFormFile("file", "huge.mp4")
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		chunk := make([]byte, 64*1024)
		for written := int64(0); written < 3*testMaxUpload; written += int64(len(chunk)) {
			if _, err := part.Write(chunk); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		w.Close()
		pw.Close()
	}()
	defer pr.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", pr)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()

	stubRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"error","error":"File too large. Maximum size is 1MB."}`, rr.Body.String())
}

func TestAnalyze_ProcessingFailure(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	svc.On("MaxUploadBytes").Return(testMaxUpload)
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(u *service.Upload) bool {
		return u.FileName == "a.mp4" && u.Size == 3
	})).Return(nil, &service.ProcessingError{Err: errors.New("quota exceeded")})

	body, contentType := multipartBody(t, "file", "a.mp4", []byte("abc"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	setupAnalyzeRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"status":"error","error":"quota exceeded"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestAnalyze_GeminiResponsePassesThrough(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	svc.On("MaxUploadBytes").Return(testMaxUpload)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(&model.AnalysisResponse{
		Status:         model.StatusSuccess,
		GeminiResponse: "```json\n{\"recipe_name\":\"Tea\"}\n```",
	}, nil)

	body, contentType := multipartBody(t, "file", "tea.mp4", []byte("abc"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	setupAnalyzeRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	out := decode(t, rr)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "```json\n{\"recipe_name\":\"Tea\"}\n```", out["gemini_response"])
	assert.NotContains(t, out, "fileSize")
}

func TestAnalyze_RecordsMissingFile(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	svc.On("MaxUploadBytes").Return(testMaxUpload)
	svc.On("RecordRejection", mock.Anything, "", service.ErrNoFile).Return()

	body, contentType := multipartBody(t, "video", "a.mp4", []byte("abc"))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	setupAnalyzeRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestProbe(t *testing.T) {
	rr := httptest.NewRecorder()
	stubRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"success","message":"Video analysis API endpoint"}`, rr.Body.String())
}

func TestListAnalyses(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rr := httptest.NewRecorder()
		stubRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		stubRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses?limit=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("records", func(t *testing.T) {
		svc := new(mocks.MockAnalysisService)
		svc.On("RecentRecords", mock.Anything, 5).Return([]model.AnalysisRecord{
			{FileName: "a.mp4", Status: model.StatusSuccess, Analyzer: service.StubAnalyzerName},
		}, nil)

		rr := httptest.NewRecorder()
		setupAnalyzeRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses?limit=5", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		records := decode(t, rr)["records"].([]any)
		require.Len(t, records, 1)
		assert.Equal(t, "a.mp4", records[0].(map[string]any)["file_name"])
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(mocks.MockAnalysisService)
		svc.On("RecentRecords", mock.Anything, 20).Return(nil, errors.New("db down"))

		rr := httptest.NewRecorder()
		setupAnalyzeRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestHealth(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		router := gin.New()
		NewHealthHandler(nil).RegisterRoutes(router)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("failing dependency", func(t *testing.T) {
		router := gin.New()
		NewHealthHandler(map[string]HealthCheck{
			"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
			"database": func(ctx context.Context) error { return nil },
		}).RegisterRoutes(router)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":{"redis":"connection refused","database":"ok"}}`, rr.Body.String())
	})
}
