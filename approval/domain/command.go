package domain

import "strings"

// CommandKind discriminates the parsed chat command.
type CommandKind string

const (
	CommandApprove       CommandKind = "approve"
	CommandRequestChange CommandKind = "change"
	CommandPause         CommandKind = "pause"
	CommandReject        CommandKind = "reject"
	CommandUnknown       CommandKind = "unknown"
)

// Command is the parsed form of an inbound chat message. Kind selects which
// fields are meaningful: PostID for every known kind, Feedback only for
// change requests, Raw only for unknown input.
type Command struct {
	Kind     CommandKind
	PostID   string
	Feedback string
	Raw      string
}

// ParseCommand parses one chat message against the command grammar:
//
//	approve:<postId>
//	change:<postId>[:<feedback>]
//	pause:<postId>
//	reject:<postId>
//
// The prefix match is case-insensitive. Feedback is everything after the
// second colon, re-joined with colons when it contains more. Anything that
// does not match yields CommandUnknown carrying the raw text.
func ParseCommand(text string) Command {
	raw := strings.TrimSpace(text)
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return Command{Kind: CommandUnknown, Raw: raw}
	}

	verb := strings.ToLower(strings.TrimSpace(parts[0]))
	postID := strings.TrimSpace(parts[1])

	switch verb {
	case "approve":
		return Command{Kind: CommandApprove, PostID: postID, Raw: raw}
	case "pause":
		return Command{Kind: CommandPause, PostID: postID, Raw: raw}
	case "reject":
		return Command{Kind: CommandReject, PostID: postID, Raw: raw}
	case "change":
		feedback := ""
		if len(parts) > 2 {
			feedback = strings.TrimSpace(strings.Join(parts[2:], ":"))
		}
		return Command{Kind: CommandRequestChange, PostID: postID, Feedback: feedback, Raw: raw}
	default:
		return Command{Kind: CommandUnknown, Raw: raw}
	}
}
