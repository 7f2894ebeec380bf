package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"churchapp/models"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthRouter(repo *fakeRequestRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(repo)
	r := gin.New()
	r.POST("/api/auth/login", h.LoginHandler)
	return r
}

func seedAccount(t *testing.T, repo *fakeRequestRepo, loginID, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.accounts[loginID] = &models.Account{
		ID:           "acct-" + loginID,
		LoginID:      loginID,
		PasswordHash: string(hash),
		Role:         "admin",
	}
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandlerIssuesToken(t *testing.T) {
	repo := newFakeRequestRepo()
	seedAccount(t, repo, "pastor.kim", "hunter2")
	r := newTestAuthRouter(repo)

	w := postLogin(r, `{"loginId":"pastor.kim","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	assert.Equal(t, "pastor.kim", resp["loginId"])

	// The token round-trips through the validator used by the middleware.
	sub, err := utils.ExtractIDFromToken(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "acct-pastor.kim", sub)
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	repo := newFakeRequestRepo()
	seedAccount(t, repo, "pastor.kim", "hunter2")
	r := newTestAuthRouter(repo)

	w := postLogin(r, `{"loginId":"pastor.kim","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandlerUnknownAccount(t *testing.T) {
	r := newTestAuthRouter(newFakeRequestRepo())

	w := postLogin(r, `{"loginId":"ghost","password":"hunter2"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandlerMissingFields(t *testing.T) {
	r := newTestAuthRouter(newFakeRequestRepo())

	w := postLogin(r, `{"loginId":"pastor.kim"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
