package domain

import (
	"context"

	contentDomain "github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
)

// IPostsAPI is the Posts collaborator contract. The API is not assumed to
// support range filters; callers filter client-side.
type IPostsAPI interface {
	ListPosts(ctx context.Context) ([]contentDomain.Post, error)
	GetPost(ctx context.Context, id string) (contentDomain.Post, error)
	PatchPost(ctx context.Context, id string, patch contentDomain.PostPatch) (contentDomain.Post, error)
}

// ISchedulesAPI is the Schedules collaborator contract.
//
// GetScheduleByPost returns found=false (with a nil error) when the post has
// no schedule yet; callers must branch to CreateSchedule in that case.
type ISchedulesAPI interface {
	GetScheduleByPost(ctx context.Context, postID string) (schedule contentDomain.Schedule, found bool, err error)
	CreateSchedule(ctx context.Context, schedule contentDomain.Schedule) (contentDomain.Schedule, error)
	PatchSchedule(ctx context.Context, id string, patch contentDomain.SchedulePatch) (contentDomain.Schedule, error)
}
