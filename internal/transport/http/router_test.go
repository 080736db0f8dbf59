package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmemory "github.com/inkpost/inkpost/internal/adapter/auth/memory"
	"github.com/inkpost/inkpost/internal/adapter/repository/memory"
	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
	"github.com/inkpost/inkpost/internal/service"
)

type testServer struct {
	handler  http.Handler
	posts    *memory.PostRepositoryStub
	comments *memory.CommentRepositoryStub
	users    *memory.UserRepositoryStub
	resolver *authmemory.Resolver
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		posts:    memory.NewPostRepositoryStub(),
		comments: memory.NewCommentRepositoryStub(),
		users:    memory.NewUserRepositoryStub(),
		resolver: authmemory.NewResolver(),
	}
	postSvc := service.NewPostService(s.posts, s.comments, s.users, memory.NewTxManager(), nil)
	commentSvc := service.NewCommentService(s.comments, s.posts, s.users, nil, nil)
	s.handler = NewRouter(postSvc, commentSvc, s.resolver, RouterConfig{AllowedOrigins: []string{"*"}})

	s.resolver.Put("alice-token", port.Identity{ID: "alice", Role: domain.RoleUser, EmailVerified: true})
	s.resolver.Put("bob-token", port.Identity{ID: "bob", Role: domain.RoleUser, EmailVerified: true})
	s.resolver.Put("admin-token", port.Identity{ID: "root", Role: domain.RoleAdmin, EmailVerified: true})
	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouterCreatePost(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/posts", "", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/posts", "alice-token", `{"title":"My Post","content":"Body"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.AuthorID)
	assert.Equal(t, domain.PostDraft, created.Status)

	rec = s.do(t, http.MethodPost, "/posts", "alice-token", `{"title":"","content":"Body"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/posts", "alice-token", `{"title":"x","content":"y","status":"NONSENSE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterListAndGetPost(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.posts.Save(context.Background(), &domain.Post{
		ID: "p1", Title: "Published", Status: domain.PostPublished, AuthorID: "alice", Tags: []string{"go"},
	}))
	require.NoError(t, s.posts.Save(context.Background(), &domain.Post{
		ID: "p2", Title: "Hidden draft", Status: domain.PostDraft, AuthorID: "alice",
	}))

	rec := s.do(t, http.MethodGet, "/posts?status=PUBLISHED", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list port.ListPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "p1", list.Data[0].ID)
	assert.Equal(t, int64(1), list.Pagination.Total)
	assert.Equal(t, int64(1), list.Pagination.TotalPages)

	rec = s.do(t, http.MethodGet, "/posts/p1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail port.GetPostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, int64(1), detail.Post.Views)

	rec = s.do(t, http.MethodGet, "/posts/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterUpdatePostOwnership(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.posts.Save(context.Background(), &domain.Post{
		ID: "p1", Title: "Mine", Status: domain.PostPublished, AuthorID: "alice",
	}))

	rec := s.do(t, http.MethodPatch, "/posts/p1", "bob-token", `{"title":"Taken"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, "/posts/p1", "alice-token", `{"title":"Renamed","isFeatured":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.IsFeatured)

	rec = s.do(t, http.MethodPatch, "/posts/p1", "admin-token", `{"isFeatured":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.IsFeatured)
}

func TestRouterMyPosts(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.users.Save(context.Background(), &domain.User{ID: "alice", Status: domain.UserActive}))
	require.NoError(t, s.posts.Save(context.Background(), &domain.Post{
		ID: "p1", Title: "Mine", Status: domain.PostDraft, AuthorID: "alice",
	}))

	rec := s.do(t, http.MethodGet, "/posts/my-posts", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/posts/my-posts", "alice-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp port.ListMyPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "p1", resp.Data[0].ID)

	// bob has a session but no user row
	rec = s.do(t, http.MethodGet, "/posts/my-posts", "bob-token", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterCommentFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.posts.Save(context.Background(), &domain.Post{
		ID: "p1", Title: "Post", Status: domain.PostPublished, AuthorID: "alice",
	}))

	rec := s.do(t, http.MethodPost, "/comments", "bob-token", `{"postId":"p1","content":"first!"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment domain.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, "bob", comment.AuthorID)
	assert.Equal(t, domain.CommentPending, comment.Status)

	rec = s.do(t, http.MethodPost, "/comments", "bob-token", `{"postId":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// moderation is the admin's call
	rec = s.do(t, http.MethodPatch, "/comments/"+comment.ID+"/moderate", "bob-token", `{"status":"APPROVED"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPatch, "/comments/"+comment.ID+"/moderate", "admin-token", `{"status":"MAYBE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/comments/"+comment.ID+"/moderate", "admin-token", `{"status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, domain.CommentApproved, comment.Status)

	// approved comment now shows up on the post detail
	rec = s.do(t, http.MethodGet, "/posts/p1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail port.GetPostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, comment.ID, detail.Comments[0].ID)
	assert.Equal(t, int64(1), detail.CommentCount)

	rec = s.do(t, http.MethodDelete, "/comments/"+comment.ID, "alice-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/comments/"+comment.ID, "bob-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
