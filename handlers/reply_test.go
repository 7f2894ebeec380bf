package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	contentRepo "churchapp/database/repository/content"
	replyRepo "churchapp/database/repository/reply"
	"churchapp/models"
	"churchapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReplyRepo struct {
	replies map[string]*models.Reply
	threads []models.ReplyThread
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{replies: map[string]*models.Reply{}}
}

func (f *fakeReplyRepo) Create(reply *models.Reply) error {
	f.replies[reply.ID] = reply
	return nil
}

func (f *fakeReplyRepo) ListThreads(kind string) ([]models.ReplyThread, error) {
	return f.threads, nil
}

func (f *fakeReplyRepo) ListByContent(kind, contentID string) ([]models.Reply, error) {
	var out []models.Reply
	for _, r := range f.replies {
		if r.Kind == kind && r.ContentID == contentID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReplyRepo) Delete(kind, id string) error {
	r, ok := f.replies[id]
	if !ok || r.Kind != kind {
		return replyRepo.ErrNotFound
	}
	delete(f.replies, id)
	return nil
}

// fakeParentRepo serves GetByID lookups for the comment endpoints; the rest of
// the content interface is unused here.
type fakeParentRepo struct {
	parents map[string]*models.Content
}

func (f *fakeParentRepo) Create(item *models.Content, details []models.ContentDetail) error {
	return nil
}
func (f *fakeParentRepo) Update(item *models.Content) error { return nil }
func (f *fakeParentRepo) Delete(kind, id string) error      { return nil }
func (f *fakeParentRepo) GetByID(kind, id string) (*models.Content, error) {
	p, ok := f.parents[kind+"/"+id]
	if !ok {
		return nil, contentRepo.ErrNotFound
	}
	return p, nil
}
func (f *fakeParentRepo) List(kind string) ([]models.Content, error) { return nil, nil }
func (f *fakeParentRepo) GetDetails(contentID string) ([]models.ContentDetail, error) {
	return nil, nil
}
func (f *fakeParentRepo) UpsertDetail(detail *models.ContentDetail) error          { return nil }
func (f *fakeParentRepo) SetDetailThumbURL(contentID, pictureID, url string) error { return nil }
func (f *fakeParentRepo) SetThumbURL(kind, id, url string) error                   { return nil }
func (f *fakeParentRepo) InsertViewMarker(marker *models.ViewMarker) error         { return nil }
func (f *fakeParentRepo) IncrementViews(ctx context.Context, kind, id string) error {
	return nil
}

func newReplyTestRouter(replies *fakeReplyRepo, parents *fakeParentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReplyHandler(replies, parents)
	r := gin.New()
	r.POST("/api/replies", h.CreateHandler)
	r.GET("/api/replies/:kind", h.ListThreadsHandler)
	r.GET("/api/replies/:kind/:id", h.ListHandler)
	r.DELETE("/api/replies/:kind/:id", h.DeleteHandler)
	return r
}

func TestCreateReplyStoresComment(t *testing.T) {
	replies := newFakeReplyRepo()
	parents := &fakeParentRepo{parents: map[string]*models.Content{
		"notice/n-1": {ID: "n-1", Kind: models.KindNotice, Title: "Easter service"},
	}}
	r := newReplyTestRouter(replies, parents)

	body := `{"kind":"notice","contentId":"n-1","userName":"Kim","userUid":"u-7","content":"Amen"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/replies", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, replies.replies, 1)
	for _, stored := range replies.replies {
		assert.Equal(t, "n-1", stored.ContentID)
		assert.Equal(t, "Amen", stored.Body)
		assert.True(t, stored.Active)
		assert.NotEmpty(t, stored.ID)
	}
}

func TestCreateReplyMissingParent(t *testing.T) {
	r := newReplyTestRouter(newFakeReplyRepo(), &fakeParentRepo{parents: map[string]*models.Content{}})

	body := `{"kind":"notice","contentId":"gone","content":"Amen"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/replies", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReplyRejectsWeekly(t *testing.T) {
	r := newReplyTestRouter(newFakeReplyRepo(), &fakeParentRepo{parents: map[string]*models.Content{}})

	body := `{"kind":"weekly","contentId":"w-1","content":"Amen"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/replies", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
}

func TestListReplyThreadsEnrichesAndSkipsDeletedParents(t *testing.T) {
	replies := newFakeReplyRepo()
	replies.threads = []models.ReplyThread{
		{ContentID: "n-2", CommentCount: 3, LatestAt: time.Now()},
		{ContentID: "n-gone", CommentCount: 1, LatestAt: time.Now().Add(-time.Hour)},
	}
	parents := &fakeParentRepo{parents: map[string]*models.Content{
		"notice/n-2": {ID: "n-2", Kind: models.KindNotice, Title: "Choir practice", Author: "Pastor Lee"},
	}}
	r := newReplyTestRouter(replies, parents)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/replies/notice", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []models.ReplyThread
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "n-2", out[0].ContentID)
	assert.Equal(t, "Choir practice", out[0].Title)
	assert.Equal(t, "Pastor Lee", out[0].Author)
	assert.Equal(t, 3, out[0].CommentCount)
}

func TestListRepliesByContent(t *testing.T) {
	replies := newFakeReplyRepo()
	replies.replies["r-1"] = &models.Reply{ID: "r-1", Kind: models.KindPhoto, ContentID: "p-1", Body: "Nice shots"}
	replies.replies["r-2"] = &models.Reply{ID: "r-2", Kind: models.KindPhoto, ContentID: "p-2", Body: "Other album"}
	r := newReplyTestRouter(replies, &fakeParentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/replies/photo/p-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []models.Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "r-1", out[0].ID)
}

func TestDeleteReply(t *testing.T) {
	replies := newFakeReplyRepo()
	replies.replies["r-1"] = &models.Reply{ID: "r-1", Kind: models.KindNotice, ContentID: "n-1"}
	r := newReplyTestRouter(replies, &fakeParentRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/replies/notice/r-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, replies.replies)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/replies/notice/r-1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
