package contentapi

import (
	"context"
	"fmt"
	"net/http"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// ApprovalClient talks to the remote approval workflow API.
type ApprovalClient struct {
	baseURL string
	token   string
}

func NewApprovalClient(cfg Config) *ApprovalClient {
	return &ApprovalClient{baseURL: cfg.ApprovalURL, token: cfg.APIToken}
}

func (c *ApprovalClient) Approve(ctx context.Context, postID string) (contentDomain.Post, error) {
	var post contentDomain.Post
	body := map[string]string{"postId": postID}
	if _, err := jsonRequest(ctx, http.MethodPost, c.baseURL+"/approvals/approve", c.token, body, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("approve post %s: %w", postID, err)
	}
	return post, nil
}

func (c *ApprovalClient) RequestChange(ctx context.Context, postID string, feedback string) (contentDomain.Post, error) {
	var post contentDomain.Post
	body := map[string]string{"postId": postID, "feedback": feedback}
	if _, err := jsonRequest(ctx, http.MethodPost, c.baseURL+"/approvals/request-change", c.token, body, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("request change for post %s: %w", postID, err)
	}
	return post, nil
}

func (c *ApprovalClient) Pause(ctx context.Context, postID string) (contentDomain.Post, error) {
	var post contentDomain.Post
	body := map[string]string{"postId": postID}
	if _, err := jsonRequest(ctx, http.MethodPost, c.baseURL+"/approvals/pause", c.token, body, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("pause post %s: %w", postID, err)
	}
	return post, nil
}

// Reject carries the post id in the path, unlike its siblings. The upstream
// route has always been shaped this way.
func (c *ApprovalClient) Reject(ctx context.Context, postID string) (contentDomain.Post, error) {
	var post contentDomain.Post
	if _, err := jsonRequest(ctx, http.MethodPost, c.baseURL+"/approvals/reject/"+postID, c.token, map[string]string{}, &post); err != nil {
		return contentDomain.Post{}, fmt.Errorf("reject post %s: %w", postID, err)
	}
	return post, nil
}

func (c *ApprovalClient) GetPostPreview(ctx context.Context, postID string) (contentDomain.PostPreview, error) {
	var preview contentDomain.PostPreview
	if _, err := jsonRequest(ctx, http.MethodGet, c.baseURL+"/posts/"+postID+"/preview", c.token, nil, &preview); err != nil {
		return contentDomain.PostPreview{}, fmt.Errorf("preview post %s: %w", postID, err)
	}
	return preview, nil
}
