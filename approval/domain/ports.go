package domain

import (
	"context"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// IMessageTransport delivers one outbound text message to a recipient.
// Implementations are expected to be safe for concurrent use; pacing is the
// dispatcher's concern, not the transport's.
type IMessageTransport interface {
	Send(ctx context.Context, recipient string, text string) error
}

// IApprovalAPI is the approval-workflow collaborator contract. Every
// mutation returns the post's state after the transition so replies can
// quote the resulting title and status.
type IApprovalAPI interface {
	Approve(ctx context.Context, postID string) (contentDomain.Post, error)
	RequestChange(ctx context.Context, postID string, feedback string) (contentDomain.Post, error)
	Pause(ctx context.Context, postID string) (contentDomain.Post, error)
	Reject(ctx context.Context, postID string) (contentDomain.Post, error)
	GetPostPreview(ctx context.Context, postID string) (contentDomain.PostPreview, error)
}
