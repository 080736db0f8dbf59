package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/pkg/httperr"
	"github.com/inkpost/inkpost/internal/pkg/logger"
	"github.com/inkpost/inkpost/internal/port"
)

type PostService struct {
	PostRepo    port.PostRepository
	CommentRepo port.CommentRepository
	UserRepo    port.UserRepository
	txManager   port.TxManager
	publisher   port.Publisher
}

// NewPostService builds the post service. publisher may be nil when no event
// bus is configured.
func NewPostService(postRepo port.PostRepository, commentRepo port.CommentRepository, userRepo port.UserRepository, txManager port.TxManager, publisher port.Publisher) *PostService {
	return &PostService{PostRepo: postRepo, CommentRepo: commentRepo, UserRepo: userRepo, txManager: txManager, publisher: publisher}
}

func (s *PostService) CreatePost(ctx context.Context, req port.CreatePostRequest) (resp port.CreatePostResponse, err error) {
	now := time.Now().UTC()
	post := &domain.Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Content:    req.Content,
		Thumbnail:  req.Thumbnail,
		Tags:       req.Tags,
		IsFeatured: req.IsFeatured,
		Status:     req.Status,
		// The author is always the caller; clients never choose the owner.
		AuthorID:  req.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Status == "" {
		post.Status = domain.PostDraft
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if err := s.PostRepo.Save(ctx, post); err != nil {
		return resp, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPostCreated(ctx, domain.PostCreated{PostID: post.ID, AuthorID: post.AuthorID, Title: post.Title}); err != nil {
			logger.From(ctx).Warn("publish post.created failed", "postId", post.ID, "err", err)
		}
	}
	resp.Post = *post
	return resp, nil
}

func (s *PostService) ListPosts(ctx context.Context, req port.ListPostsRequest) (resp port.ListPostsResponse, err error) {
	page := req.Page.Normalize()
	srt := req.Sort.Normalize()

	data, total, err := s.PostRepo.FindMany(ctx, req.Filter, page, srt)
	if err != nil {
		return resp, err
	}
	if data == nil {
		data = []port.PostWithCount{}
	}
	resp.Data = data
	resp.Pagination = port.PageInfo{
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}
	return resp, nil
}

// GetPost increments the view counter and reads the post with its approved
// comment tree inside one transaction, so the returned count always reflects
// this fetch.
func (s *PostService) GetPost(ctx context.Context, req port.GetPostRequest) (resp port.GetPostResponse, err error) {
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PostRepo.IncrementViews(ctx, req.ID); err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return httperr.NotFound("post not found")
			}
			return err
		}
		post, err := s.PostRepo.FindByID(ctx, req.ID)
		if err != nil {
			return err
		}
		comments, err := s.CommentRepo.ListApprovedByPost(ctx, req.ID)
		if err != nil {
			return err
		}
		count, err := s.CommentRepo.CountByPost(ctx, req.ID)
		if err != nil {
			return err
		}
		resp.Post = *post
		resp.Comments = buildCommentTree(comments)
		resp.CommentCount = count
		return nil
	})
	return resp, err
}

func (s *PostService) ListMyPosts(ctx context.Context, req port.ListMyPostsRequest) (resp port.ListMyPostsResponse, err error) {
	user, err := s.UserRepo.FindByID(ctx, req.AuthorID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("user not found")
		}
		return resp, err
	}
	if user.Status != domain.UserActive {
		return resp, httperr.Forbidden("user is not active")
	}
	posts, err := s.PostRepo.ListByAuthor(ctx, req.AuthorID)
	if err != nil {
		return resp, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	resp.Data = posts
	return resp, nil
}

func (s *PostService) UpdatePost(ctx context.Context, req port.UpdatePostRequest) (resp port.UpdatePostResponse, err error) {
	ownerID, err := s.PostRepo.FindOwner(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("post not found")
		}
		return resp, err
	}
	if !req.IsAdmin && ownerID != req.CallerID {
		return resp, httperr.Forbidden("you cannot update this post")
	}
	upd := req.Update
	if !req.IsAdmin {
		// Only admins may feature a post; the field is dropped, not rejected.
		upd.IsFeatured = nil
	}
	post, err := s.PostRepo.Update(ctx, req.ID, upd)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("post not found")
		}
		return resp, err
	}
	resp.Post = *post
	return resp, nil
}

func (s *PostService) DeletePost(ctx context.Context, req port.DeletePostRequest) (resp port.DeletePostResponse, err error) {
	ownerID, err := s.PostRepo.FindOwner(ctx, req.ID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return resp, httperr.NotFound("post not found")
		}
		return resp, err
	}
	if !req.IsAdmin && ownerID != req.CallerID {
		return resp, httperr.Forbidden("you cannot delete this post")
	}
	if err := s.PostRepo.Delete(ctx, req.ID); err != nil {
		return resp, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPostDeleted(ctx, domain.PostDeleted{PostID: req.ID}); err != nil {
			logger.From(ctx).Warn("publish post.deleted failed", "postId", req.ID, "err", err)
		}
	}
	resp.Ok = true
	return resp, nil
}

// buildCommentTree arranges approved comments into top-level comments
// (newest first) with two levels of replies (oldest first). Replies whose
// parent is not in the approved set are dropped with their subtree.
func buildCommentTree(comments []domain.Comment) []port.CommentNode {
	children := make(map[string][]domain.Comment)
	var roots []domain.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	for id := range children {
		replies := children[id]
		sort.Slice(replies, func(i, j int) bool {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		})
		children[id] = replies
	}

	nodes := make([]port.CommentNode, 0, len(roots))
	for _, root := range roots {
		node := port.CommentNode{Comment: root}
		for _, reply := range children[root.ID] {
			child := port.CommentNode{Comment: reply}
			for _, nested := range children[reply.ID] {
				child.Replies = append(child.Replies, port.CommentNode{Comment: nested})
			}
			node.Replies = append(node.Replies, child)
		}
		nodes = append(nodes, node)
	}
	return nodes
}
