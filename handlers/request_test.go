package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	requestRepo "churchapp/database/repository/request"
	"churchapp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRequestRepo struct {
	requests map[string]*models.AccountRequest
	accounts map[string]*models.Account
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: map[string]*models.AccountRequest{},
		accounts: map[string]*models.Account{},
	}
}

func (f *fakeRequestRepo) List() ([]models.AccountRequest, error) {
	var out []models.AccountRequest
	for _, r := range f.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRequestRepo) GetByID(id string) (*models.AccountRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) Approve(id string) error {
	r, ok := f.requests[id]
	if !ok {
		return requestRepo.ErrNotFound
	}
	if r.Approve {
		return requestRepo.ErrAlreadyApproved
	}
	r.Approve = true
	return nil
}

func (f *fakeRequestRepo) Delete(id string) error {
	if _, ok := f.requests[id]; !ok {
		return requestRepo.ErrNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) CreateAccount(account *models.Account) error {
	f.accounts[account.LoginID] = account
	return nil
}

func (f *fakeRequestRepo) GetAccountByLoginID(loginID string) (*models.Account, error) {
	a, ok := f.accounts[loginID]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	return a, nil
}

func newTestRequestRouter(repo requestRepo.RequestRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRequestHandler(repo)
	r := gin.New()
	r.POST("/api/requests/:id/approve", h.ApproveHandler)
	return r
}

func TestApproveHandlerCreatesAccount(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests["req-1"] = &models.AccountRequest{
		ID:           "req-1",
		Who:          "Youth pastor",
		LoginID:      "pastor.kim",
		Password:     "hunter2",
		RegisteredAt: time.Now(),
	}
	r := newTestRequestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests/req-1/approve", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.requests["req-1"].Approve)

	account, err := repo.GetAccountByLoginID("pastor.kim")
	require.NoError(t, err)
	// The account stores a hash, never the submitted password.
	assert.NotEqual(t, "hunter2", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2")))
}

func TestApproveHandlerUnknownRequest(t *testing.T) {
	r := newTestRequestRouter(newFakeRequestRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests/ghost/approve", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApproveHandlerRejectsSecondApproval(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests["req-1"] = &models.AccountRequest{
		ID:       "req-1",
		LoginID:  "pastor.kim",
		Password: "hunter2",
		Approve:  true,
	}
	r := newTestRequestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/requests/req-1/approve", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	// No second account write happens.
	assert.Empty(t, repo.accounts)
}
