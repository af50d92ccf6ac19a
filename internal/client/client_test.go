package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rechner-api/internal/calculator"
	"rechner-api/internal/observability"
	"rechner-api/internal/rechnungen"
	"rechner-api/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	observability.Logger = zap.NewNop()

	store, err := rechnungen.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	srv := httptest.NewServer(server.NewRouter(store))
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", srv.Client())
}

func TestClient_CalculateStoresRecord(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, op := range []calculator.Operator{calculator.OpAdd, calculator.OpSubtract, calculator.OpMultiply, calculator.OpDivide} {
		want, err := calculator.Evaluate(7.5, 2.5, op)
		require.NoError(t, err)

		got, err := c.Calculate(ctx, 7.5, 2.5, op)
		require.NoError(t, err, "operator %q", op)
		assert.Equal(t, want, got, "operator %q", op)
	}

	records, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestClient_CalculateErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Calculate(context.Background(), 5, 0, calculator.OpDivide)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Division by zero is not allowed.", apiErr.Message)
}

func TestClient_CRUD(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, 5, 10, calculator.OpAdd)
	require.NoError(t, err)
	assert.Equal(t, rechnungen.Record{ID: 1, FirstNumber: 5, SecondNumber: 10, Operator: "+", Result: 15}, *created)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := c.Update(ctx, created.ID, 10, 4, calculator.OpSubtract)
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.Result)

	msg, err := c.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	_, err = c.Get(ctx, created.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_NonJSONErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, srv.Client()).List(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}
