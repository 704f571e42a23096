package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/services"
)

func newGASProxyTest(t *testing.T, upstream http.HandlerFunc, allowedActions string) (*GASController, *httptest.Server) {
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	t.Setenv("GAS_DEPLOYMENT_URL", server.URL)
	t.Setenv("GAS_API_KEY", "")
	t.Setenv("GAS_ALLOWED_ACTIONS", allowedActions)

	return NewGASController(services.NewGASService()), server
}

func doProxyRequest(controller *GASController, method string, query url.Values, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, "/api/gas?"+query.Encode(), reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rec, controller.Proxy(c)
}

func TestProxyRequiresAction(t *testing.T) {
	controller, _ := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	}, "")

	rec, err := doProxyRequest(controller, http.MethodGet, url.Values{}, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.GASResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestProxyRejectsDisallowedAction(t *testing.T) {
	controller, _ := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	}, "getStreamers")

	query := url.Values{}
	query.Set("action", "wipeSheet")

	rec, err := doProxyRequest(controller, http.MethodGet, query, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProxyForwardsQueryParamsVerbatim(t *testing.T) {
	var gotQuery url.Values

	controller, _ := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"data":[]}`))
	}, "")

	query := url.Values{}
	query.Set("action", "getCommissions")
	query.Set("month", "2026-08")
	query.Set("streamerId", "s1")

	rec, err := doProxyRequest(controller, http.MethodGet, query, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	assert.Equal(t, "getCommissions", gotQuery.Get("action"))
	assert.Equal(t, "2026-08", gotQuery.Get("month"))
	assert.Equal(t, "s1", gotQuery.Get("streamerId"))
}

func TestProxyPassesThroughUpstreamClientError(t *testing.T) {
	controller, _ := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"error":"bad month"}`))
	}, "")

	query := url.Values{}
	query.Set("action", "getCommissions")

	rec, err := doProxyRequest(controller, http.MethodGet, query, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"bad month"}`, rec.Body.String())
}

func TestProxyTagsUpstreamFailure(t *testing.T) {
	controller, server := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "")
	_ = server

	query := url.Values{}
	query.Set("action", "getStreamers")

	rec, err := doProxyRequest(controller, http.MethodGet, query, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.GASResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Tag)
}

func TestProxyForwardsPOSTBody(t *testing.T) {
	var gotBody string

	controller, _ := newGASProxyTest(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}, "")

	query := url.Values{}
	query.Set("action", "updateStreamer")

	payload := `{"name":"Mika","level":4}`
	rec, err := doProxyRequest(controller, http.MethodPost, query, payload)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, payload, gotBody)
}
