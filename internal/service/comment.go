package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/pkg/httperr"
	"github.com/inkpost/inkpost/internal/pkg/logger"
	"github.com/inkpost/inkpost/internal/port"
)

type CommentService struct {
	CommentRepo port.CommentRepository
	PostRepo    port.PostRepository
	UserRepo    port.UserRepository
	publisher   port.Publisher
	mailer      port.Mailer
}

// NewCommentService builds the comment service. publisher and mailer may be
// nil; moderation then skips notification.
func NewCommentService(commentRepo port.CommentRepository, postRepo port.PostRepository, userRepo port.UserRepository, publisher port.Publisher, mailer port.Mailer) *CommentService {
	return &CommentService{CommentRepo: commentRepo, PostRepo: postRepo, UserRepo: userRepo, publisher: publisher, mailer: mailer}
}

func (s *CommentService) CreateComment(ctx context.Context, req port.CreateCommentRequest) (resp port.CreateCommentResponse, err error) {
	if _, err := s.PostRepo.FindOwner(ctx, req.PostID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("post not found")
		}
		return resp, err
	}
	if req.ParentID != nil {
		parent, err := s.CommentRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return resp, httperr.NotFound("parent comment not found")
			}
			return resp, err
		}
		// A reply always stays on its parent's post.
		if parent.PostID != req.PostID {
			return resp, httperr.BadRequest("parent comment belongs to a different post")
		}
	}
	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Content:   req.Content,
		Status:    domain.CommentPending,
		AuthorID:  req.AuthorID,
		PostID:    req.PostID,
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CommentRepo.Save(ctx, comment); err != nil {
		return resp, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishCommentCreated(ctx, domain.CommentCreated{CommentID: comment.ID, PostID: comment.PostID, AuthorID: comment.AuthorID}); err != nil {
			logger.From(ctx).Warn("publish comment.created failed", "commentId", comment.ID, "err", err)
		}
	}
	resp.Comment = *comment
	return resp, nil
}

func (s *CommentService) GetComment(ctx context.Context, req port.GetCommentRequest) (resp port.GetCommentResponse, err error) {
	comment, err := s.CommentRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("comment not found")
		}
		return resp, err
	}
	resp.Comment = *comment
	return resp, nil
}

func (s *CommentService) ListCommentsByAuthor(ctx context.Context, req port.ListCommentsByAuthorRequest) (resp port.ListCommentsByAuthorResponse, err error) {
	comments, err := s.CommentRepo.ListByAuthor(ctx, req.AuthorID)
	if err != nil {
		return resp, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	resp.Data = comments
	return resp, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, req port.UpdateCommentRequest) (resp port.UpdateCommentResponse, err error) {
	comment, err := s.CommentRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("comment not found")
		}
		return resp, err
	}
	if !req.IsAdmin && comment.AuthorID != req.CallerID {
		return resp, httperr.Forbidden("you cannot update this comment")
	}
	comment.Content = req.Content
	comment.UpdatedAt = time.Now().UTC()
	if err := s.CommentRepo.Save(ctx, comment); err != nil {
		return resp, err
	}
	resp.Comment = *comment
	return resp, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, req port.DeleteCommentRequest) (resp port.DeleteCommentResponse, err error) {
	comment, err := s.CommentRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("comment not found")
		}
		return resp, err
	}
	if !req.IsAdmin && comment.AuthorID != req.CallerID {
		return resp, httperr.Forbidden("you cannot delete this comment")
	}
	if _, err := s.CommentRepo.DeleteByParent(ctx, comment.ID); err != nil {
		return resp, err
	}
	if err := s.CommentRepo.Delete(ctx, comment.ID); err != nil {
		return resp, err
	}
	resp.Ok = true
	return resp, nil
}

func (s *CommentService) ModerateComment(ctx context.Context, req port.ModerateCommentRequest) (resp port.ModerateCommentResponse, err error) {
	if !req.IsAdmin {
		return resp, httperr.Forbidden("only admins can moderate comments")
	}
	if req.Status != domain.CommentApproved && req.Status != domain.CommentRejected {
		return resp, httperr.BadRequest("status must be APPROVED or REJECTED")
	}
	comment, err := s.CommentRepo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("comment not found")
		}
		return resp, err
	}
	comment.Status = req.Status
	comment.UpdatedAt = time.Now().UTC()
	if err := s.CommentRepo.Save(ctx, comment); err != nil {
		return resp, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishCommentModerated(ctx, domain.CommentModerated{CommentID: comment.ID, PostID: comment.PostID, Status: string(comment.Status)}); err != nil {
			logger.From(ctx).Warn("publish comment.moderated failed", "commentId", comment.ID, "err", err)
		}
	}
	s.notifyAuthor(ctx, comment)
	resp.Comment = *comment
	return resp, nil
}

// notifyAuthor emails the comment author about the moderation outcome.
// Delivery failures are logged, never surfaced.
func (s *CommentService) notifyAuthor(ctx context.Context, comment *domain.Comment) {
	if s.mailer == nil {
		return
	}
	author, err := s.UserRepo.FindByID(ctx, comment.AuthorID)
	if err != nil {
		logger.From(ctx).Warn("moderation mail skipped, author lookup failed", "commentId", comment.ID, "err", err)
		return
	}
	verb := "approved"
	if comment.Status == domain.CommentRejected {
		verb = "rejected"
	}
	msg := port.EmailMessage{
		To:      author.Email,
		Subject: fmt.Sprintf("Your comment was %s", verb),
		Text:    fmt.Sprintf("Hello %s,\n\nyour comment has been %s by a moderator.\n", author.Name, verb),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.From(ctx).Warn("moderation mail failed", "commentId", comment.ID, "err", err)
	}
}
