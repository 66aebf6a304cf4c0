package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "holocron/internal/errors"
)

func errorRoute(err error) *gin.Engine {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { respondError(c, err) })
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", apperrors.NewNotFoundError("Planet not found"), http.StatusNotFound, `{"msg":"Planet not found","error":"not_found"}`},
		{"validation details", apperrors.NewValidationError("invalid user_id", "abc"), http.StatusBadRequest, `{"msg":"invalid user_id","error":"abc"}`},
		{"conflict", apperrors.NewConflictError("email already registered"), http.StatusConflict, `{"msg":"email already registered","error":"conflict"}`},
		{"plain error hidden", errors.New("dial tcp: refused"), http.StatusInternalServerError, `{"msg":"Server error","error":"internal_error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(errorRoute(tt.err))
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestRespondError_DebugShowsCause(t *testing.T) {
	gin.SetMode(gin.DebugMode)
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	w := get(errorRoute(errors.New("dial tcp: refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"msg":"Server error","error":"dial tcp: refused"}`, w.Body.String())
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/:id", func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{"/7": http.StatusOK, "/0": http.StatusBadRequest, "/-1": http.StatusBadRequest, "/x": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}
