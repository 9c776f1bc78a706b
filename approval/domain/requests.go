package domain

// NotifyApprovalRequest asks the dispatcher to send one approval card.
// Recipient is optional; the caller falls back to the configured default.
type NotifyApprovalRequest struct {
	PostID    string `json:"postId"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

// BulkNotifyRequest fans approval cards out to every recipient for every
// post.
type BulkNotifyRequest struct {
	PostIDs    []string `json:"post_ids"`
	Recipients []string `json:"recipients"`
}

// InboundMessageRequest is one chat message relayed by the messaging
// gateway.
type InboundMessageRequest struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
