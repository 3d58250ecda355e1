package forms

import (
	"context"

	"damagesnap/internal/api"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// PostClient is the part of the API client the post forms use.
type PostClient interface {
	CreatePost(ctx context.Context, in models.PostCreate) api.Result[models.Post]
	AddComment(ctx context.Context, postID int64, in models.CommentCreate) api.Result[models.Comment]
	LikePost(ctx context.Context, postID int64) api.Result[models.StatusMessage]
}

// PostForm publishes a community update.
type PostForm struct {
	Content  string
	Location string
	Tags     []string
}

func (f *PostForm) Validate() (models.PostCreate, error) {
	if blank(f.Content) {
		return models.PostCreate{}, invalid("Error", "Post content cannot be empty.")
	}
	in := models.PostCreate{Content: f.Content, Tags: f.Tags}
	if !blank(f.Location) {
		loc := f.Location
		in.Location = &loc
	}
	return in, nil
}

func (f *PostForm) Submit(ctx context.Context, c PostClient, n toast.Notifier) (*models.Post, error) {
	in, err := f.Validate()
	if err != nil {
		return nil, reject(n, err)
	}
	res := c.CreatePost(ctx, in)
	if !res.OK() {
		notify(n, toast.Failure("Post Creation Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Post Created", "Your post has been published."))
	f.Reset()
	return res.Data, nil
}

func (f *PostForm) Reset() {
	*f = PostForm{}
}

// CommentForm adds a comment to one post.
type CommentForm struct {
	PostID  int64
	Content string
}

func (f *CommentForm) Submit(ctx context.Context, c PostClient, n toast.Notifier) (*models.Comment, error) {
	if blank(f.Content) {
		return nil, reject(n, invalid("Error", "Comment cannot be empty."))
	}
	res := c.AddComment(ctx, f.PostID, models.CommentCreate{Content: f.Content})
	if !res.OK() {
		notify(n, toast.Failure("Comment Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Comment Added", "Your comment has been added."))
	f.Content = ""
	return res.Data, nil
}

// LikePost likes a post and reports the outcome.
func LikePost(ctx context.Context, c PostClient, postID int64, n toast.Notifier) error {
	res := c.LikePost(ctx, postID)
	if !res.OK() {
		notify(n, toast.Failure("Failed to Like Post", res.Error))
		return res.Err()
	}
	notify(n, toast.Success("Post Liked!", "You've liked this post."))
	return nil
}
