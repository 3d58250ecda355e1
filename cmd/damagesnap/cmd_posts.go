package main

import (
	"fmt"
	"strconv"

	"damagesnap/internal/api"
	"damagesnap/internal/forms"
	"damagesnap/internal/models"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	postLimit    int
	postOffset   int
	postLocation string
	postTags     []string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Read and write community posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent posts",
	RunE:  runPostsList,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create <content>",
	Short: "Publish a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsCreate,
}

var postsLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsLike,
}

var postsCommentCmd = &cobra.Command{
	Use:   "comment <post-id> <content>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsComment,
}

var postsCommentsCmd = &cobra.Command{
	Use:   "comments <post-id>",
	Short: "List the comments of a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsComments,
}

func init() {
	postsListCmd.Flags().IntVar(&postLimit, "limit", api.DefaultPostsLimit, "Number of posts")
	postsListCmd.Flags().IntVar(&postOffset, "offset", api.DefaultPostsOffset, "Posts to skip")
	postsCreateCmd.Flags().StringVar(&postLocation, "location", "", "Where the post is about")
	postsCreateCmd.Flags().StringSliceVar(&postTags, "tag", nil, "Tag (repeatable)")

	postsCmd.AddCommand(postsListCmd, postsCreateCmd, postsLikeCmd, postsCommentCmd, postsCommentsCmd)
}

// parseID reads a positive numeric ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func runPostsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	posts, err := load(rt.API.ListPosts(ctx, postLimit, postOffset), "Error")
	if err != nil {
		return err
	}
	ui.Posts(stdout, posts)
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	f := forms.PostForm{Content: args[0], Location: postLocation, Tags: postTags}
	p, err := f.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.Posts(stdout, []models.Post{*p})
	return nil
}

func runPostsLike(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	return reported(forms.LikePost(ctx, rt.API, id, notifier))
}

func runPostsComment(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	f := forms.CommentForm{PostID: id, Content: args[1]}
	_, err = f.Submit(ctx, rt.API, notifier)
	return reported(err)
}

func runPostsComments(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	comments, err := load(rt.API.ListComments(ctx, id), "Error")
	if err != nil {
		return err
	}
	ui.Comments(stdout, id, comments)
	return nil
}
