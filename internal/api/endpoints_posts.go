package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"damagesnap/internal/models"
)

// Default page for ListPosts.
const (
	DefaultPostsLimit  = 20
	DefaultPostsOffset = 0
)

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, in models.PostCreate) Result[models.Post] {
	return do[models.Post](ctx, c, call{op: "posts.create", method: http.MethodPost, endpoint: "/api/posts", body: jsonBody{in}, auth: true})
}

// ListPosts returns a page of posts.
func (c *Client) ListPosts(ctx context.Context, limit, offset int) Result[[]models.Post] {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return do[[]models.Post](ctx, c, call{op: "posts.list", method: http.MethodGet, endpoint: "/api/posts?" + q.Encode()})
}

// LikePost likes a post as the authenticated user.
func (c *Client) LikePost(ctx context.Context, postID int64) Result[models.StatusMessage] {
	return do[models.StatusMessage](ctx, c, call{op: "posts.like", method: http.MethodPost, endpoint: fmt.Sprintf("/api/posts/%d/like", postID), auth: true})
}

// AddComment comments on a post.
func (c *Client) AddComment(ctx context.Context, postID int64, in models.CommentCreate) Result[models.Comment] {
	return do[models.Comment](ctx, c, call{op: "posts.comment", method: http.MethodPost, endpoint: fmt.Sprintf("/api/posts/%d/comments", postID), body: jsonBody{in}, auth: true})
}

// ListComments returns the comments on a post.
func (c *Client) ListComments(ctx context.Context, postID int64) Result[[]models.Comment] {
	return do[[]models.Comment](ctx, c, call{op: "posts.comments", method: http.MethodGet, endpoint: fmt.Sprintf("/api/posts/%d/comments", postID)})
}
