package lists

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchAppend(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody patchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "secret-key", 5*time.Second)
	err := client.Patch(context.Background(), "lst_eu1", OpAppend, "45.90.28.101")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/v1/lists/lst_eu1", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, patchRequest{Op: OpAppend, Value: "45.90.28.101"}, gotBody)
}

func TestPatchRemove(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body patchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, OpRemove, body.Op)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	require.NoError(t, client.Patch(context.Background(), "lst_na1", OpRemove, "45.90.28.101"))
}

func TestPatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"invalid list id"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	err := client.Patch(context.Background(), "lst_bad", OpAppend, "45.90.28.101")
	require.Error(t, err)

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusForbidden, rej.StatusCode)
	assert.Equal(t, "invalid list id", rej.Message)
}

func TestPatchRejectedNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", 5*time.Second)
	err := client.Patch(context.Background(), "lst_eu1", OpRemove, "x")

	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "bad request", rej.Message)
}

func TestPatchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL, "", time.Second)
	err := client.Patch(context.Background(), "lst_eu1", OpAppend, "45.90.28.101")
	require.Error(t, err)

	var rej *RejectedError
	assert.False(t, errors.As(err, &rej), "transport failures are not rejections")
}
