package nats

import (
	"context"
	"encoding/json"

	natspkg "github.com/nats-io/nats.go"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

const (
	SubjectPostCreated      = "blog.post.created"
	SubjectPostDeleted      = "blog.post.deleted"
	SubjectCommentCreated   = "blog.comment.created"
	SubjectCommentModerated = "blog.comment.moderated"
)

type Client struct {
	nc *natspkg.Conn
}

func NewClient(url string) (*Client, error) {
	nc, err := natspkg.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc}, nil
}

func (c *Client) Close() {
	c.nc.Close()
}

func (c *Client) IsConnected() bool {
	return c.nc != nil && c.nc.Status() == natspkg.CONNECTED
}

func (c *Client) publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.nc.Publish(subject, data)
}

func (c *Client) PublishPostCreated(ctx context.Context, event domain.PostCreated) error {
	_ = ctx
	return c.publish(SubjectPostCreated, event)
}

func (c *Client) PublishPostDeleted(ctx context.Context, event domain.PostDeleted) error {
	_ = ctx
	return c.publish(SubjectPostDeleted, event)
}

func (c *Client) PublishCommentCreated(ctx context.Context, event domain.CommentCreated) error {
	_ = ctx
	return c.publish(SubjectCommentCreated, event)
}

func (c *Client) PublishCommentModerated(ctx context.Context, event domain.CommentModerated) error {
	_ = ctx
	return c.publish(SubjectCommentModerated, event)
}

func (c *Client) Subscribe(subject string, handler func(data []byte) error) (*natspkg.Subscription, error) {
	return c.nc.Subscribe(subject, func(msg *natspkg.Msg) {
		_ = handler(msg.Data)
	})
}

var _ port.Publisher = (*Client)(nil)
