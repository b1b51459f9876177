//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesHealth(t *testing.T) {
	h := Routes("/agui", http.NotFoundHandler())
	ts := httptest.NewServer(h)
	defer ts.Close()

	rsp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, http.StatusOK, rsp.StatusCode)
}

func TestRoutesMountsHandler(t *testing.T) {
	mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Routes("/agui", mounted)
	ts := httptest.NewServer(h)
	defer ts.Close()

	rsp, err := http.Post(ts.URL+"/agui", "application/json", nil)
	require.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, http.StatusTeapot, rsp.StatusCode)
}

func TestRoutesCORSHeaders(t *testing.T) {
	h := Routes("/agui", http.NotFoundHandler())
	ts := httptest.NewServer(h)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/agui", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rsp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, "*", rsp.Header.Get("Access-Control-Allow-Origin"))
}
