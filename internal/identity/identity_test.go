package identity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stdbtools/spacetime-token/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Run("returns the issued token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/identity", r.URL.Path)
			w.Write([]byte(`{"token": "tok-issued"}`))
		}))
		defer srv.Close()

		// The /spacetime suffix is stripped before the endpoint path is
		// appended, like any other address.
		tok, err := identity.Fetch(srv.URL + "/spacetime")
		require.NoError(t, err)
		assert.Equal(t, "tok-issued", tok)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := identity.Fetch(srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("empty token fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token": "   "}`))
		}))
		defer srv.Close()

		_, err := identity.Fetch(srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did not include a token")
	})

	t.Run("malformed body fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := identity.Fetch(srv.URL)
		assert.Error(t, err)
	})

	t.Run("unreachable server fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := identity.Fetch(srv.URL)
		assert.Error(t, err)
	})
}
