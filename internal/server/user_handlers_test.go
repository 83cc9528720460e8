package server

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfileEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	user, token := createUserWithToken(t, s, db, "me@example.com", "Me")

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.User
	decodeBody(t, resp, &got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "me@example.com", got.Email)
}

func TestUpdateMyProfileEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	user, token := createUserWithToken(t, s, db, "me@example.com", "Me")

	resp := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"name":   "Renamed",
		"avatar": "https://cdn.example.com/new.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "Renamed", body.User.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, "https://cdn.example.com/new.png", stored.Avatar)

	// Too-short name is rejected
	resp = doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"name": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestProfileEditDoesNotRewriteHistory(t *testing.T) {
	s, app, db := setupTestServer(t)
	_, token := createUserWithToken(t, s, db, "me@example.com", "Original Name")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "written before rename",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)

	resp = doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"name": "New Name",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// The snapshot on the old post is untouched
	resp = doJSON(t, app, http.MethodGet, "/api/posts/"+strconv.Itoa(int(post.ID)), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, "Original Name", got.UserName)
}

func TestGetUserPostsEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	alice, token := createUserWithToken(t, s, db, "alice@example.com", "Alice")
	seedFeedPosts(t, db, alice, 100, 200)

	resp := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/posts", alice.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts []models.Post `json:"posts"`
		Count int           `json:"count"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, int64(200), body.Posts[0].Timestamp)
}

func TestGetUserStatsEndpoint(t *testing.T) {
	s, app, db := setupTestServer(t)
	alice, aliceToken := createUserWithToken(t, s, db, "alice@example.com", "Alice")
	_, fanToken := createUserWithToken(t, s, db, "fan@example.com", "Fan")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", aliceToken, map[string]string{
		"content": "stat me",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/like", post.ID), fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/users/%d/stats", alice.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		PostCount  int `json:"postCount"`
		TotalLikes int `json:"totalLikes"`
	}
	decodeBody(t, resp, &stats)
	assert.Equal(t, 1, stats.PostCount)
	assert.Equal(t, 1, stats.TotalLikes)
}
