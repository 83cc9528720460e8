package server

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	user, token := createUserWithToken(t, s, db, "author@example.com", "Author")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content":  "first post",
		"imageUrl": "https://img.example.com/1.png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "Author", post.UserName)
	assert.Equal(t, "first post", post.Content)
	assert.Equal(t, "https://img.example.com/1.png", post.ImageURL)
	assert.NotZero(t, post.Timestamp)
	assert.False(t, post.IsRepost)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Reposts)
}

func TestCreatePostEndpointValidation(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": strings.Repeat("x", 501),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// 500 multi-byte characters exceed 500 bytes but stay within the cap
	resp = doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": strings.Repeat("é", 500),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// Surrounding whitespace is trimmed before storage
	resp = doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "  padded  ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var trimmed models.Post
	decodeBody(t, resp, &trimmed)
	assert.Equal(t, "padded", trimmed.Content)
}

func TestGetPostEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "findable",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeBody(t, resp, &created)

	resp = doJSON(t, app, http.MethodGet, "/api/posts/"+strconv.Itoa(int(created.ID)), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/posts/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/posts/not-a-number", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestToggleLikeEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")
	fan, fanToken := createUserWithToken(t, s, db, "fan@example.com", "Fan")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "likeable",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)
	path := "/api/posts/" + strconv.Itoa(int(post.ID)) + "/like"

	resp = doJSON(t, app, http.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result models.LikeResult
	decodeBody(t, resp, &result)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.TotalLikes)

	// Liker shows up in the post's likes array
	resp = doJSON(t, app, http.MethodGet, "/api/posts/"+strconv.Itoa(int(post.ID)), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, []uint{fan.ID}, got.Likes)

	// Toggling again removes the like
	resp = doJSON(t, app, http.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.TotalLikes)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/99999/like", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestToggleRepostEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")
	fan, fanToken := createUserWithToken(t, s, db, "fan@example.com", "Fan")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content":  "repostable",
		"imageUrl": "https://img.example.com/o.png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var original models.Post
	decodeBody(t, resp, &original)
	path := "/api/posts/" + strconv.Itoa(int(original.ID)) + "/repost"

	resp = doJSON(t, app, http.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result models.RepostResult
	decodeBody(t, resp, &result)
	assert.True(t, result.Reposted)
	assert.Equal(t, 1, result.TotalReposts)

	// The materialized repost row carries a snapshot of the original
	var rows []models.Post
	require.NoError(t, db.Where("is_repost = ?", true).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, fan.ID, rows[0].UserID)
	assert.Equal(t, "Fan", rows[0].UserName)
	assert.Equal(t, "repostable", rows[0].Content)
	assert.Equal(t, "https://img.example.com/o.png", rows[0].ImageURL)
	require.NotNil(t, rows[0].OriginalID)
	assert.Equal(t, original.ID, *rows[0].OriginalID)

	// Toggling back removes the marker and the synthetic row
	resp = doJSON(t, app, http.MethodPost, path, fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.False(t, result.Reposted)
	assert.Equal(t, 0, result.TotalReposts)

	require.NoError(t, db.Where("is_repost = ?", true).Find(&rows).Error)
	assert.Empty(t, rows)
}

func TestDeletePostEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")
	_, otherToken := createUserWithToken(t, s, db, "other@example.com", "Other")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "mine",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)
	path := "/api/posts/" + strconv.Itoa(int(post.ID))

	// Someone else cannot delete it
	resp = doJSON(t, app, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// Deleting again reports not found
	resp = doJSON(t, app, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestPostJSONShape(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "author@example.com", "Author")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "shape check",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]any
	decodeBody(t, resp, &raw)
	for _, key := range []string{"id", "userId", "userName", "content", "timestamp", "likes", "reposts", "isRepost"} {
		assert.Contains(t, raw, key)
	}
	// Empty engagement sets marshal as arrays, not null
	assert.Equal(t, []any{}, raw["likes"])
	assert.Equal(t, []any{}, raw["reposts"])
	// originalID is omitted for plain posts
	assert.NotContains(t, raw, "originalID")
}
