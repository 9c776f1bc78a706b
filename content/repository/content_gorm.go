package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Saran-Akshintala/autocontent-pro-sub000/content/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Persistence Models ---

type postModel struct {
	ID        string    `gorm:"primaryKey"`
	BrandID   string    `gorm:"index:idx_posts_brand"`
	BrandName string
	Title     string
	Hook      string    `gorm:"type:text"`
	Body      string    `gorm:"type:text"`
	Hashtags  string    `gorm:"type:text;default:'[]'"` // JSON
	Platforms string    `gorm:"type:text;default:'[]'"` // JSON
	Status    string    `gorm:"index:idx_posts_status;default:'DRAFT'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (postModel) TableName() string {
	return "posts"
}

type scheduleModel struct {
	ID        string    `gorm:"primaryKey"`
	PostID    string    `gorm:"uniqueIndex:idx_schedules_post;not null"` // one schedule per post
	RunAt     time.Time `gorm:"index:idx_schedules_run_at;not null"`
	Timezone  string    `gorm:"default:'UTC'"`
	Status    string    `gorm:"default:'PENDING'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (scheduleModel) TableName() string {
	return "schedules"
}

// --- Repository Implementation ---

// ContentGormRepository is the embedded content store. It backs the same
// collaborator contracts the remote HTTP clients implement, so the service
// can run standalone without an external content API.
type ContentGormRepository struct {
	db *gorm.DB
}

func NewContentGormRepository(db *gorm.DB) *ContentGormRepository {
	return &ContentGormRepository{db: db}
}

func (r *ContentGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&postModel{}, &scheduleModel{})
}

// --- Posts ---

func (r *ContentGormRepository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var models []postModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(models))
	for _, m := range models {
		post := fromPostModel(m)
		sched, err := r.scheduleForPost(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		post.Schedule = sched
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *ContentGormRepository) GetPost(ctx context.Context, id string) (domain.Post, error) {
	var m postModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Post{}, domain.ErrPostNotFound
		}
		return domain.Post{}, err
	}

	post := fromPostModel(m)
	sched, err := r.scheduleForPost(ctx, m.ID)
	if err != nil {
		return domain.Post{}, err
	}
	post.Schedule = sched
	return post, nil
}

func (r *ContentGormRepository) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}

	if err := r.db.WithContext(ctx).Create(toPostModel(post)).Error; err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (r *ContentGormRepository) PatchPost(ctx context.Context, id string, patch domain.PostPatch) (domain.Post, error) {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.Content != nil {
		updates["hook"] = patch.Content.Hook
		updates["body"] = patch.Content.Body
		updates["hashtags"] = marshalList(patch.Content.Hashtags)
		updates["platforms"] = marshalList(patch.Content.Platforms)
	}

	result := r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return domain.Post{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Post{}, domain.ErrPostNotFound
	}
	return r.GetPost(ctx, id)
}

// --- Schedules ---

func (r *ContentGormRepository) GetScheduleByPost(ctx context.Context, postID string) (domain.Schedule, bool, error) {
	var m scheduleModel
	if err := r.db.WithContext(ctx).First(&m, "post_id = ?", postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Schedule{}, false, nil
		}
		return domain.Schedule{}, false, err
	}
	return fromScheduleModel(m), true, nil
}

func (r *ContentGormRepository) CreateSchedule(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now
	if schedule.Status == "" {
		schedule.Status = domain.ScheduleStatusPending
	}
	if schedule.Timezone == "" {
		schedule.Timezone = "UTC"
	}

	if err := r.db.WithContext(ctx).Create(toScheduleModel(schedule)).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "duplicate key value") {
			return domain.Schedule{}, domain.ErrDuplicateSchedule
		}
		return domain.Schedule{}, err
	}
	return schedule, nil
}

func (r *ContentGormRepository) PatchSchedule(ctx context.Context, id string, patch domain.SchedulePatch) (domain.Schedule, error) {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.RunAt != nil {
		updates["run_at"] = patch.RunAt.UTC()
	}
	if patch.Timezone != nil {
		updates["timezone"] = *patch.Timezone
	}

	result := r.db.WithContext(ctx).Model(&scheduleModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return domain.Schedule{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}

	var m scheduleModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.Schedule{}, err
	}
	return fromScheduleModel(m), nil
}

// --- Approval transitions ---

func (r *ContentGormRepository) Approve(ctx context.Context, postID string) (domain.Post, error) {
	return r.transition(ctx, postID, domain.PostStatusScheduled)
}

func (r *ContentGormRepository) RequestChange(ctx context.Context, postID string, feedback string) (domain.Post, error) {
	// Feedback travels back to the author out of band; the store only
	// records the state change.
	return r.transition(ctx, postID, domain.PostStatusDraft)
}

func (r *ContentGormRepository) Pause(ctx context.Context, postID string) (domain.Post, error) {
	return r.transition(ctx, postID, domain.PostStatusPaused)
}

func (r *ContentGormRepository) Reject(ctx context.Context, postID string) (domain.Post, error) {
	return r.transition(ctx, postID, domain.PostStatusDraft)
}

func (r *ContentGormRepository) GetPostPreview(ctx context.Context, postID string) (domain.PostPreview, error) {
	post, err := r.GetPost(ctx, postID)
	if err != nil {
		return domain.PostPreview{}, err
	}
	return domain.PostPreview{
		ID:        post.ID,
		Title:     post.Title,
		BrandName: post.BrandName,
		Status:    post.Status,
		Content:   post.Content,
		Schedule:  post.Schedule,
	}, nil
}

func (r *ContentGormRepository) transition(ctx context.Context, postID string, status domain.PostStatus) (domain.Post, error) {
	return r.PatchPost(ctx, postID, domain.PostPatch{Status: &status})
}

// --- Converters ---

func (r *ContentGormRepository) scheduleForPost(ctx context.Context, postID string) (*domain.Schedule, error) {
	sched, found, err := r.GetScheduleByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &sched, nil
}

func toPostModel(post domain.Post) *postModel {
	return &postModel{
		ID:        post.ID,
		BrandID:   post.BrandID,
		BrandName: post.BrandName,
		Title:     post.Title,
		Hook:      post.Content.Hook,
		Body:      post.Content.Body,
		Hashtags:  marshalList(post.Content.Hashtags),
		Platforms: marshalList(post.Content.Platforms),
		Status:    string(post.Status),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func fromPostModel(m postModel) domain.Post {
	return domain.Post{
		ID:        m.ID,
		BrandID:   m.BrandID,
		BrandName: m.BrandName,
		Title:     m.Title,
		Content: domain.PostContent{
			Hook:      m.Hook,
			Body:      m.Body,
			Hashtags:  unmarshalList(m.Hashtags),
			Platforms: unmarshalList(m.Platforms),
		},
		Status:    domain.PostStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toScheduleModel(schedule domain.Schedule) *scheduleModel {
	return &scheduleModel{
		ID:        schedule.ID,
		PostID:    schedule.PostID,
		RunAt:     schedule.RunAt.UTC(),
		Timezone:  schedule.Timezone,
		Status:    string(schedule.Status),
		CreatedAt: schedule.CreatedAt,
		UpdatedAt: schedule.UpdatedAt,
	}
}

func fromScheduleModel(m scheduleModel) domain.Schedule {
	return domain.Schedule{
		ID:        m.ID,
		PostID:    m.PostID,
		RunAt:     m.RunAt.UTC(),
		Timezone:  m.Timezone,
		Status:    domain.ScheduleStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func unmarshalList(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}
