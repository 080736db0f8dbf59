package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/pkg/httperr"
	"github.com/inkpost/inkpost/internal/port"
)

type CommentHandler struct {
	svc port.Comments
}

func NewCommentHandler(svc port.Comments) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type createCommentRequest struct {
	PostID   string  `json:"postId" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	ParentID *string `json:"parentId"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type moderateCommentRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	var body createCommentRequest
	if err := decodeJSON(r, &body); err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	resp, err := h.svc.CreateComment(r.Context(), port.CreateCommentRequest{
		PostID:   body.PostID,
		Content:  body.Content,
		ParentID: body.ParentID,
		AuthorID: identity.ID,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp.Comment)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetComment(r.Context(), port.GetCommentRequest{ID: chi.URLParam(r, "commentId")})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Comment)
}

func (h *CommentHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.ListCommentsByAuthor(r.Context(), port.ListCommentsByAuthorRequest{
		AuthorID: chi.URLParam(r, "authorId"),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	var body updateCommentRequest
	if err := decodeJSON(r, &body); err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	resp, err := h.svc.UpdateComment(r.Context(), port.UpdateCommentRequest{
		ID:       chi.URLParam(r, "commentId"),
		Content:  body.Content,
		CallerID: identity.ID,
		IsAdmin:  identity.IsAdmin(),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Comment)
}

func (h *CommentHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	var body moderateCommentRequest
	if err := decodeJSON(r, &body); err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	resp, err := h.svc.ModerateComment(r.Context(), port.ModerateCommentRequest{
		ID:      chi.URLParam(r, "commentId"),
		Status:  domain.CommentStatus(body.Status),
		IsAdmin: identity.IsAdmin(),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r)
	if !ok {
		httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
		return
	}
	resp, err := h.svc.DeleteComment(r.Context(), port.DeleteCommentRequest{
		ID:       chi.URLParam(r, "commentId"),
		CallerID: identity.ID,
		IsAdmin:  identity.IsAdmin(),
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
