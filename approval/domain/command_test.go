package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "approve",
			text: "approve:post123",
			want: Command{Kind: CommandApprove, PostID: "post123", Raw: "approve:post123"},
		},
		{
			name: "approve uppercase prefix",
			text: "APPROVE:post123",
			want: Command{Kind: CommandApprove, PostID: "post123", Raw: "APPROVE:post123"},
		},
		{
			name: "pause",
			text: "pause:post123",
			want: Command{Kind: CommandPause, PostID: "post123", Raw: "pause:post123"},
		},
		{
			name: "reject",
			text: "reject:post123",
			want: Command{Kind: CommandReject, PostID: "post123", Raw: "reject:post123"},
		},
		{
			name: "change without feedback",
			text: "change:post123",
			want: Command{Kind: CommandRequestChange, PostID: "post123", Raw: "change:post123"},
		},
		{
			name: "change with feedback",
			text: "change:post123:please fix the headline",
			want: Command{Kind: CommandRequestChange, PostID: "post123", Feedback: "please fix the headline", Raw: "change:post123:please fix the headline"},
		},
		{
			name: "feedback keeps its own colons",
			text: "change:post123:use ratio 16:9 instead",
			want: Command{Kind: CommandRequestChange, PostID: "post123", Feedback: "use ratio 16:9 instead", Raw: "change:post123:use ratio 16:9 instead"},
		},
		{
			name: "surrounding whitespace",
			text: "  approve: post123  ",
			want: Command{Kind: CommandApprove, PostID: "post123", Raw: "approve: post123"},
		},
		{
			name: "plain chatter",
			text: "hello there",
			want: Command{Kind: CommandUnknown, Raw: "hello there"},
		},
		{
			name: "unknown verb",
			text: "publish:post123",
			want: Command{Kind: CommandUnknown, Raw: "publish:post123"},
		},
		{
			name: "empty",
			text: "",
			want: Command{Kind: CommandUnknown},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCommand(tc.text))
		})
	}
}
