package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UsageCast/internal/domain/models"
	xhttp "UsageCast/pkg/http"
	"UsageCast/pkg/logger"
)

func newTestHTTPBackend(url string) *HTTPBackend {
	return NewHTTPBackend(NewHTTPServiceBase(url, time.Second), logger.Nop())
}

func TestHTTPBackendPostsFixedOrder(t *testing.T) {
	var got forecastRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(forecastResponse{
			Predictions: []float64{1, 2, 3},
			Errors:      []float64{0.1, 0.2, 0.3},
		})
	}))
	defer srv.Close()

	fitted, err := newTestHTTPBackend(srv.URL+"/").Fit(context.Background(), []float64{4, 5, 6}, models.DefaultModelConfig())
	require.NoError(t, err)
	preds, errs, err := fitted.Predict(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, preds)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, errs)
	assert.Equal(t, []float64{4, 5, 6}, got.Values)
	assert.Equal(t, [3]int{2, 1, 2}, got.Order)
	assert.Equal(t, [4]int{0, 0, 0, 0}, got.SeasonalOrder)
	assert.True(t, got.AutoOrder)
	assert.Equal(t, 3, got.Steps)
}

func TestHTTPBackendSingleAttemptOnServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fitted, err := newTestHTTPBackend(srv.URL).Fit(context.Background(), []float64{1, 2}, models.DefaultModelConfig())
	require.NoError(t, err)
	_, _, err = fitted.Predict(context.Background(), 2)

	var fitErr *models.ModelFittingError
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, BackendHTTP, fitErr.Backend)
	var statusErr *xhttp.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestHTTPBackendRejectsShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(forecastResponse{Predictions: []float64{1}, Errors: []float64{1}})
	}))
	defer srv.Close()

	fitted, err := newTestHTTPBackend(srv.URL).Fit(context.Background(), []float64{1, 2}, models.DefaultModelConfig())
	require.NoError(t, err)
	_, _, err = fitted.Predict(context.Background(), 2)

	var fitErr *models.ModelFittingError
	assert.ErrorAs(t, err, &fitErr)
}

func TestHTTPBackendFitValidatesLocally(t *testing.T) {
	b := newTestHTTPBackend("http://127.0.0.1:1")

	_, err := b.Fit(context.Background(), nil, models.DefaultModelConfig())

	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestHTTPBackendFitCopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	fitted, err := newTestHTTPBackend("http://127.0.0.1:1").Fit(context.Background(), values, models.DefaultModelConfig())
	require.NoError(t, err)

	values[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, fitted.(*remoteFit).values)
}
