package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/cache"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestFlushCache_InvalidatesLandingView(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := testConfig()
	cfg.IndexCacheTTLSeconds = 20
	s, err := NewServerWithDeps(cfg, db, cache.GetClient())
	require.NoError(t, err)
	app := s.testApp()

	admin := createTestUser(t, db, "root", true)
	author := createTestUser(t, db, "leo", false)
	seedPosts(t, db, author, 3)

	fetchTotal := func() int64 {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var page models.PostPage
		decodeBody(t, resp, &page)
		return page.TotalItems
	}

	require.Equal(t, int64(3), fetchTotal())

	// A new post does not show through the still-warm cache.
	seedPosts(t, db, author, 1)
	assert.Equal(t, int64(3), fetchTotal())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cache/flush", nil)
	req.Header.Set("Authorization", authHeader(t, s, admin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(4), fetchTotal())
}
