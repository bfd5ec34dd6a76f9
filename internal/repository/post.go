package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts. All listings
// return the matching page together with the unfiltered total so callers can
// compute page counts; ordering is newest-first with the id as tiebreaker so
// pages are stable when posts share a creation timestamp.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error)
	ListFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	return r.listWhere(ctx, limit, offset, nil)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", groupID)
	})
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", authorID)
	})
}

// ListFeed returns posts written by authors the given user follows.
func (r *postRepository) ListFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	return r.listWhere(ctx, limit, offset, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", userID)
	})
}

// listWhere runs the shared count-then-page pair for a post listing. The
// count uses the same filter as the page query so totals always agree with
// the rows being paged over.
func (r *postRepository) listWhere(ctx context.Context, limit, offset int, scope func(*gorm.DB) *gorm.DB) ([]*models.Post, int64, error) {
	counted := r.db.WithContext(ctx).Model(&models.Post{})
	if scope != nil {
		counted = scope(counted)
	}

	var total int64
	if err := counted.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group")
	if scope != nil {
		query = scope(query)
	}

	var posts []*models.Post
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
