package handler

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
)

func TestPostHandler_Lifecycle(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.post.EXPECT().Create(gomock.Any(), int64(1), "hello").
		Return(&domain.Post{ID: 7, UserID: 1, Body: "hello"}, nil)
	svc.post.EXPECT().Create(gomock.Any(), int64(42), "hello").
		Return(nil, apperrors.ErrUserNotFound)
	svc.post.EXPECT().GetByID(gomock.Any(), int64(7)).
		Return(&domain.Post{ID: 7, UserID: 1, Body: "hello"}, nil)
	svc.post.EXPECT().List(gomock.Any(), 1, domain.DefaultPerPage).
		Return(&domain.PostList{Posts: []*domain.Post{{ID: 7}}, TotalCount: 1}, nil)
	svc.post.EXPECT().ListByUser(gomock.Any(), int64(1), 2, 3).
		Return(&domain.PostList{Posts: []*domain.Post{}, TotalCount: 1}, nil)
	svc.post.EXPECT().Update(gomock.Any(), int64(7), "edited").
		Return(&domain.Post{ID: 7, UserID: 1, Body: "edited"}, nil)
	svc.post.EXPECT().Delete(gomock.Any(), int64(7)).Return(true, nil)

	w := doRequest(t, r, http.MethodPost, "/api/v1/posts", map[string]interface{}{"user_id": 1, "body": "hello"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 7, decode(t, w)["id"])

	w = doRequest(t, r, http.MethodPost, "/api/v1/posts", map[string]interface{}{"user_id": 42, "body": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/posts/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/users/1/posts?page=2&per_page=3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/v1/posts/7", map[string]interface{}{"body": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode(t, w)["body"])

	w = doRequest(t, r, http.MethodDelete, "/api/v1/posts/7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}
