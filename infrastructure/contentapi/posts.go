package contentapi

import (
	"context"
	"fmt"
	"net/http"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// PostsClient talks to the remote Posts API.
type PostsClient struct {
	baseURL string
	token   string
}

func NewPostsClient(cfg Config) *PostsClient {
	return &PostsClient{baseURL: cfg.PostsURL, token: cfg.APIToken}
}

func (c *PostsClient) ListPosts(ctx context.Context) ([]contentDomain.Post, error) {
	var posts []contentDomain.Post
	if _, err := jsonRequest(ctx, http.MethodGet, c.baseURL+"/posts", c.token, nil, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (c *PostsClient) GetPost(ctx context.Context, id string) (contentDomain.Post, error) {
	var post contentDomain.Post
	if _, err := jsonRequest(ctx, http.MethodGet, c.baseURL+"/posts/"+id, c.token, nil, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

func (c *PostsClient) PatchPost(ctx context.Context, id string, patch contentDomain.PostPatch) (contentDomain.Post, error) {
	var post contentDomain.Post
	if _, err := jsonRequest(ctx, http.MethodPatch, c.baseURL+"/posts/"+id, c.token, patch, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("patch post %s: %w", id, err)
	}
	return post, nil
}
