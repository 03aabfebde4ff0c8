package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/catalog"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"Id": 4, "Price": "$12", "Cores": 2}]}`))
	}))
	defer srv.Close()

	loader := catalog.NewLoader(time.Second).Register(catalog.KindVPS, catalog.HTTPSource{URL: srv.URL})
	got, err := loader.Load(context.Background(), catalog.KindVPS)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, 12.0, got[0].Price)
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := catalog.HTTPSource{URL: srv.URL}.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPSource_MalformedBodyIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	loader := catalog.NewLoader(time.Second).Register(catalog.KindDedicated, catalog.HTTPSource{URL: srv.URL})
	got, err := loader.Load(context.Background(), catalog.KindDedicated)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoader_Timeout(t *testing.T) {
	slow := catalog.SourceFunc(func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	loader := catalog.NewLoader(20 * time.Millisecond).Register(catalog.KindVPS, slow)
	_, err := loader.Load(context.Background(), catalog.KindVPS)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoader_UnregisteredKind(t *testing.T) {
	_, err := catalog.NewLoader(0).Load(context.Background(), catalog.KindVPS)
	assert.ErrorIs(t, err, catalog.ErrNoSource)
}

func TestLoader_LoadAllPartialSuccess(t *testing.T) {
	loader := catalog.NewLoader(time.Second).
		Register(catalog.KindVPS, catalog.SourceFunc(func(context.Context) (any, error) {
			return []any{map[string]any{"id": 1.0, "price": 5.0}}, nil
		})).
		Register(catalog.KindDedicated, catalog.SourceFunc(func(context.Context) (any, error) {
			return nil, errors.New("connection refused")
		}))

	snap := loader.LoadAll(context.Background())

	assert.Len(t, snap.VPS, 1)
	assert.Nil(t, snap.Dedicated)
	assert.Len(t, snap.Errors, 1)
	assert.Error(t, snap.Errors[catalog.KindDedicated])
	assert.False(t, snap.Failed())
	assert.Equal(t, snap.VPS, snap.Products(catalog.KindVPS))
}

func TestAsBody(t *testing.T) {
	type row struct {
		ID    uint    `json:"id"`
		Price float64 `json:"price"`
	}
	body, err := catalog.AsBody([]row{{ID: 3, Price: 9.5}})
	require.NoError(t, err)

	got := catalog.Normalize(body, catalog.KindVPS)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, 9.5, got[0].Price)
}
