package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"messenger/internal/domain"
	apperrors "messenger/pkg/errors"
)

func TestUserHandler_Create(t *testing.T) {
	r, svc := newTestRouter(t)

	svc.user.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			assert.Equal(t, "alice", u.Name)
			assert.Equal(t, "alice@example.com", u.Email)
			u.ID = 1
			return u, nil
		})
	svc.user.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.ErrEmailTaken)

	body := map[string]interface{}{"name": "alice", "email": "alice@example.com", "age": 30}

	w := doRequest(t, r, http.MethodPost, "/api/v1/users", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["id"])

	w = doRequest(t, r, http.MethodPost, "/api/v1/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_GetListUpdateDelete(t *testing.T) {
	r, svc := newTestRouter(t)

	name := "bob"
	svc.user.EXPECT().GetByID(gomock.Any(), int64(3)).Return(nil, apperrors.ErrUserNotFound)
	svc.user.EXPECT().List(gomock.Any(), 1, 10).
		Return(&domain.UserList{Users: []*domain.User{{ID: 1}}, TotalCount: 1}, nil)
	svc.user.EXPECT().Update(gomock.Any(), int64(1), domain.UserUpdate{Name: &name}).
		Return(&domain.User{ID: 1, Name: name}, nil)
	svc.user.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil)

	w := doRequest(t, r, http.MethodGet, "/api/v1/users/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/users?per_page=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total_count"])

	w = doRequest(t, r, http.MethodPut, "/api/v1/users/1", map[string]interface{}{"name": name})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, name, decode(t, w)["name"])

	w = doRequest(t, r, http.MethodDelete, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}
