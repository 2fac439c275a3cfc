package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"messenger/internal/domain"
	"messenger/internal/middleware"
	apperrors "messenger/pkg/errors"
)

// requireCaller rejects a request that acts for userID when the
// authenticated caller is someone else. Unauthenticated routes accept any id.
func requireCaller(c *gin.Context, userID int64) error {
	caller, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return nil
	}
	if id, _ := caller.(int64); id != userID {
		return apperrors.ErrForbidden
	}
	return nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidArgument("invalid " + name)
	}
	return id, nil
}

// optionalQueryID returns nil when the parameter is absent.
func optionalQueryID(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid " + name)
	}
	return &id, nil
}

// boolQuery accepts the strconv.ParseBool spellings; absent means false.
func boolQuery(c *gin.Context, name string) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidArgument("invalid " + name)
	}
	return v, nil
}

// pageQuery reads page and per_page, defaulting to the first page.
// Range checks are left to domain.NewPage.
func pageQuery(c *gin.Context) (page, perPage int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 0, 0, apperrors.ErrInvalidPage
	}
	perPage, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(domain.DefaultPerPage)))
	if err != nil {
		return 0, 0, apperrors.ErrInvalidPerPage
	}
	return page, perPage, nil
}

func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperrors.InvalidArgument("invalid request body: " + err.Error())
	}
	return nil
}
