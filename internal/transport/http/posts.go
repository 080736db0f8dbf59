package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/pkg/httperr"
	"github.com/inkpost/inkpost/internal/port"
)

type PostHandler struct {
	svc port.Posts
}

func NewPostHandler(svc port.Posts) *PostHandler {
	return &PostHandler{svc: svc}
}

type createPostRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	Thumbnail  string   `json:"thumbnail"`
	Tags       []string `json:"tags"`
	IsFeatured bool     `json:"isFeatured"`
	Status     string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type updatePostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,min=1"`
	Content    *string   `json:"content" validate:"omitempty,min=1"`
	Thumbnail  *string   `json:"thumbnail"`
	Tags       *[]string `json:"tags"`
	IsFeatured *bool     `json:"isFeatured"`
	Status     *string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	var body createPostRequest
	if err := decodeJSON(r, &body); err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	resp, err := h.svc.CreatePost(r.Context(), port.CreatePostRequest{
		Title:      body.Title,
		Content:    body.Content,
		Thumbnail:  body.Thumbnail,
		Tags:       body.Tags,
		IsFeatured: body.IsFeatured,
		Status:     domain.PostStatus(body.Status),
		AuthorID:   identity.ID,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.Post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListPosts(r.Context(), parseListPostsQuery(r.URL.Query()))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetPost(r.Context(), port.GetPostRequest{ID: chi.URLParam(r, "postId")})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	resp, err := h.svc.ListMyPosts(r.Context(), port.ListMyPostsRequest{AuthorID: identity.ID})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	var body updatePostRequest
	if err := decodeJSON(r, &body); err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	upd := port.PostUpdate{
		Title:      body.Title,
		Content:    body.Content,
		Thumbnail:  body.Thumbnail,
		Tags:       body.Tags,
		IsFeatured: body.IsFeatured,
	}
	if body.Status != nil {
		status := domain.PostStatus(*body.Status)
		upd.Status = &status
	}
	resp, err := h.svc.UpdatePost(r.Context(), port.UpdatePostRequest{
		ID:       chi.URLParam(r, "postId"),
		Update:   upd,
		CallerID: identity.ID,
		IsAdmin:  identity.IsAdmin(),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	resp, err := h.svc.DeletePost(r.Context(), port.DeletePostRequest{
		ID:       chi.URLParam(r, "postId"),
		CallerID: identity.ID,
		IsAdmin:  identity.IsAdmin(),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseListPostsQuery maps the query string onto the typed filter. Invalid
// page/limit values fall back to the defaults via Normalize.
func parseListPostsQuery(q url.Values) port.ListPostsRequest {
	var req port.ListPostsRequest

	req.Filter.Search = q.Get("search")
	if raw := q.Get("tags"); raw != "" {
		req.Filter.Tags = strings.Split(raw, ",")
	}
	switch q.Get("isFeatured") {
	case "true":
		v := true
		req.Filter.IsFeatured = &v
	case "false":
		v := false
		req.Filter.IsFeatured = &v
	}
	req.Filter.Status = domain.PostStatus(q.Get("status"))
	req.Filter.AuthorID = q.Get("authorId")

	req.Page.Page, _ = strconv.Atoi(q.Get("page"))
	req.Page.Limit, _ = strconv.Atoi(q.Get("limit"))
	req.Sort.Field = q.Get("sortBy")
	req.Sort.Order = port.SortOrder(q.Get("sortOrder"))
	return req
}
