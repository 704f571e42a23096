package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGASService(t *testing.T, serverURL string) *GASService {
	t.Setenv("GAS_DEPLOYMENT_URL", serverURL)
	t.Setenv("GAS_API_KEY", "test-key")
	t.Setenv("GAS_ALLOWED_ACTIONS", "")
	return NewGASService()
}

func TestGASForwardPassesQueryAndHeaders(t *testing.T) {
	var gotQuery url.Values
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAPIKey = r.Header.Get("X-Api-Key")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	service := newTestGASService(t, server.URL)

	query := url.Values{}
	query.Set("action", "getStreamers")
	query.Set("month", "2026-08")

	status, body, err := service.Forward(context.Background(), http.MethodGet, query, nil)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))
	assert.Equal(t, "getStreamers", gotQuery.Get("action"))
	assert.Equal(t, "2026-08", gotQuery.Get("month"))
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestGASForwardRetriesServerErrors(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	service := newTestGASService(t, server.URL)

	status, _, err := service.Forward(context.Background(), http.MethodGet, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGASForwardGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := newTestGASService(t, server.URL)

	_, _, err := service.Forward(context.Background(), http.MethodGet, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, int32(gasMaxAttempts), atomic.LoadInt32(&calls))
}

func TestGASForwardDoesNotRetryClientErrors(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"unknown action"}`))
	}))
	defer server.Close()

	service := newTestGASService(t, server.URL)

	status, _, err := service.Forward(context.Background(), http.MethodGet, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGASForwardForwardsPOSTBody(t *testing.T) {
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	service := newTestGASService(t, server.URL)

	payload := []byte(`{"action":"updateStreamer","name":"Mika"}`)
	_, _, err := service.Forward(context.Background(), http.MethodPost, nil, payload)

	assert.NoError(t, err)
	assert.JSONEq(t, string(payload), string(gotBody))
}

func TestGASForwardRequiresDeploymentURL(t *testing.T) {
	t.Setenv("GAS_DEPLOYMENT_URL", "")
	service := NewGASService()

	_, _, err := service.Forward(context.Background(), http.MethodGet, nil, nil)
	assert.Error(t, err)
}

func TestGASActionAllowed(t *testing.T) {
	t.Setenv("GAS_DEPLOYMENT_URL", "https://script.google.com/macros/s/x/exec")
	t.Setenv("GAS_ALLOWED_ACTIONS", "getStreamers, getCommissions")
	service := NewGASService()

	assert.True(t, service.ActionAllowed("getStreamers"))
	assert.True(t, service.ActionAllowed("getCommissions"))
	assert.False(t, service.ActionAllowed("deleteEverything"))

	t.Setenv("GAS_ALLOWED_ACTIONS", "")
	open := NewGASService()
	assert.True(t, open.ActionAllowed("anything"))
}
