package health

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/order"
	"shopbot/internal/session"
)

func TestBannerAndHealthz(t *testing.T) {
	sessions := session.NewStore()
	orders := order.NewRegistry()
	sessions.Start(1, time.Now())
	orders.Put(&order.Order{ID: "ORD-a", CustomerID: 1})

	s := NewServer("Abdul iPhone Shop", sessions, orders)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Abdul iPhone Shop")

	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessions":1`)
	assert.Contains(t, rec.Body.String(), `"orders":1`)
}
