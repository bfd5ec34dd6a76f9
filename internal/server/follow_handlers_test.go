package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func followCount(t *testing.T, db *gorm.DB, userID, authorID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error)
	return count
}

func TestFollowAuthor(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	author := createTestUser(t, db, "leo", false)

	req := httptest.NewRequest(http.MethodPost, "/api/users/leo/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/api/users/leo", resp.Header.Get("Location"))
	assert.Equal(t, int64(1), followCount(t, db, reader.ID, author.ID))
}

func TestFollowAuthor_TwiceKeepsSingleEdge(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	author := createTestUser(t, db, "leo", false)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/leo/follow", nil)
		req.Header.Set("Authorization", authHeader(t, s, reader))
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}

	assert.Equal(t, int64(1), followCount(t, db, reader.ID, author.ID))
}

func TestFollowAuthor_SelfIsNoOp(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)

	req := httptest.NewRequest(http.MethodPost, "/api/users/reader/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Same quiet redirect as a successful follow, but no edge appears.
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int64(0), followCount(t, db, reader.ID, reader.ID))
}

func TestFollowAuthor_UnknownAuthor(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)

	req := httptest.NewRequest(http.MethodPost, "/api/users/ghost/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnfollowAuthor(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	author := createTestUser(t, db, "leo", false)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/leo/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int64(0), followCount(t, db, reader.ID, author.ID))

	// Unfollowing again is harmless.
	req = httptest.NewRequest(http.MethodDelete, "/api/users/leo/follow", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestFollowFeed_OnlyFollowedAuthors(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	leo := createTestUser(t, db, "leo", false)
	mina := createTestUser(t, db, "mina", false)

	seedPosts(t, db, leo, 2)
	seedPosts(t, db, mina, 3)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: leo.ID}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.PostPage
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(2), page.TotalItems)
	for _, post := range page.Items {
		assert.Equal(t, leo.ID, post.AuthorID)
	}
}

func TestFollowFeed_EmptyWithoutFollows(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	leo := createTestUser(t, db, "leo", false)
	seedPosts(t, db, leo, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var page models.PostPage
	decodeBody(t, resp, &page)
	assert.Equal(t, int64(0), page.TotalItems)
	assert.Empty(t, page.Items)
}

func TestFollowFeed_RequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	app := s.testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fapi%2Ffeed", resp.Header.Get("Location"))
}

func TestGetProfile_FollowingFlag(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	author := createTestUser(t, db, "leo", false)
	seedPosts(t, db, author, 2)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: author.ID}).Error)

	var profile struct {
		Author        models.User     `json:"author"`
		Posts         models.PostPage `json:"posts"`
		Following     bool            `json:"following"`
		FollowerCount int64           `json:"follower_count"`
	}

	// Authenticated viewer who follows.
	req := httptest.NewRequest(http.MethodGet, "/api/users/leo", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &profile)
	_ = resp.Body.Close()
	assert.True(t, profile.Following)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(2), profile.Posts.TotalItems)
	assert.Equal(t, "leo", profile.Author.Username)

	// Anonymous viewer.
	req = httptest.NewRequest(http.MethodGet, "/api/users/leo", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &profile)
	_ = resp.Body.Close()
	assert.False(t, profile.Following)

	// The author viewing their own profile.
	req = httptest.NewRequest(http.MethodGet, "/api/users/leo", nil)
	req.Header.Set("Authorization", authHeader(t, s, author))
	resp, err = app.Test(req)
	require.NoError(t, err)
	decodeBody(t, resp, &profile)
	_ = resp.Body.Close()
	assert.False(t, profile.Following)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	s, _ := newTestServer(t)
	app := s.testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFollowing(t *testing.T) {
	s, db := newTestServer(t)
	app := s.testApp()

	reader := createTestUser(t, db, "reader", false)
	leo := createTestUser(t, db, "leo", false)
	mina := createTestUser(t, db, "mina", false)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: leo.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{UserID: reader.ID, AuthorID: mina.ID}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me/following", nil)
	req.Header.Set("Authorization", authHeader(t, s, reader))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var authors []models.User
	decodeBody(t, resp, &authors)
	assert.Len(t, authors, 2)
}
