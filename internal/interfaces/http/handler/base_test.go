package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-id")
		c.Request.Header.Set("X-Request-ID", "header-id")

		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-id")

		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when unset", func(t *testing.T) {
		c, _ := newTestContext(t)
		assert.Empty(t, getRequestID(c))
	})
}

func TestHandleErrorDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "conflict code",
			err:        shared.NewDomainError("RECEIPT_EXISTS", "Receipt already issued for this period"),
			wantStatus: http.StatusConflict,
			wantCode:   "RECEIPT_EXISTS",
		},
		{
			name:       "business rule code",
			err:        shared.NewDomainError("UNIT_NOT_VACANT", "Unit is already let"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "UNIT_NOT_VACANT",
		},
		{
			name:       "invalid prefix falls back to 400",
			err:        shared.NewDomainError("INVALID_PERIOD", "Bad billing period"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_PERIOD",
		},
		{
			name:       "unknown code falls back to 500",
			err:        shared.NewDomainError("SOMETHING_ODD", "?"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SOMETHING_ODD",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleErrorNotFoundSentinel(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleError(c, shared.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestHandleErrorUnknownError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.HandleError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	// Internal details never leak to the client
	assert.NotContains(t, resp.Error.Message, "boom")
}

func TestHandleErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)
	c.Set("request_id", "req-123")

	h.HandleError(c, shared.NewDomainError("NOT_FOUND", "gone"))

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestBuildFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(t)

		filter, err := buildFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		assert.Equal(t, "created_at", filter.OrderBy)
		assert.Equal(t, "desc", filter.OrderDir)
	})

	t.Run("binds query parameters", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?page=3&page_size=50&order_by=name&order_dir=asc&search=sunrise", nil)

		filter, err := buildFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 50, filter.PageSize)
		assert.Equal(t, "name", filter.OrderBy)
		assert.Equal(t, "asc", filter.OrderDir)
		assert.Equal(t, "sunrise", filter.Search)
	})

	t.Run("rejects oversized page size", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?page_size=500", nil)

		_, err := buildFilter(c)
		assert.Error(t, err)
	})
}

func TestParseUUIDQuery(t *testing.T) {
	t.Run("absent is nil", func(t *testing.T) {
		c, _ := newTestContext(t)

		id, ok := parseUUIDQuery(c, "property_id")
		assert.True(t, ok)
		assert.Nil(t, id)
	})

	t.Run("valid uuid", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?property_id=7b8a1a39-64ad-4c7c-bd09-8f9f4b1c2a6d", nil)

		id, ok := parseUUIDQuery(c, "property_id")
		assert.True(t, ok)
		require.NotNil(t, id)
		assert.Equal(t, "7b8a1a39-64ad-4c7c-bd09-8f9f4b1c2a6d", id.String())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?property_id=not-a-uuid", nil)

		_, ok := parseUUIDQuery(c, "property_id")
		assert.False(t, ok)
	})
}
