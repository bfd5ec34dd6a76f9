package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignup(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	req := jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"username":"leo","email":"leo@example.com","password":"SecurePass12!@"}`)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "leo", body.User.Username)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignup_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	app := s.testApp()

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"username":"leo"}`},
		{"bad username", `{"username":"-x-","email":"leo@example.com","password":"SecurePass12!@"}`},
		{"bad email", `{"username":"leo","email":"not-an-email","password":"SecurePass12!@"}`},
		{"weak password", `{"username":"leo","email":"leo@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/signup", tc.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()
	createTestUser(t, db, "leo", false)

	req := jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"username":"leonard","email":"leo@example.com","password":"SecurePass12!@"}`)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()
	createTestUser(t, db, "leo", false)

	req := jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"leo@example.com","password":"SecurePass12!@"}`)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()
	createTestUser(t, db, "leo", false)

	cases := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"leo@example.com","password":"WrongPass12!@"}`},
		{"unknown email", `{"email":"nobody@example.com","password":"SecurePass12!@"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/auth/login", tc.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRefresh(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()
	user := createTestUser(t, db, "leo", false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", authHeader(t, s, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
}

func TestAuthRequired_BadToken(t *testing.T) {
	s, _ := newTestServer(t)
	app := s.testApp()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/login?next=")
}
