// Package service contains the application business logic.
package service

import (
	"context"
	"time"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/repository"
)

// FeedService assembles the paginated post listings: the landing view, a
// group's wall, an author's profile and the personalized follow feed.
type FeedService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	store     *cache.Store
	pageSize  int
	indexTTL  time.Duration
}

// NewFeedService creates a FeedService. store holds the landing-view cache
// and may wrap a nil client; pageSize is the fixed page length for every
// listing; indexTTL bounds the staleness of the cached landing view, zero
// disables that cache.
func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	store *cache.Store,
	pageSize int,
	indexTTL time.Duration,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		store:     store,
		pageSize:  pageSize,
		indexTTL:  indexTTL,
	}
}

// Index returns one page of the global newest-first listing. The first page
// is the landing view and is cached whole under a single fixed key; readers
// may see a view up to indexTTL stale, including after new posts are
// published. Deeper pages always hit the database.
func (s *FeedService) Index(ctx context.Context, page int) (*models.PostPage, error) {
	if page == 1 && s.indexTTL > 0 {
		var cached models.PostPage
		err := s.store.Aside(ctx, cache.IndexKey(), &cached, s.indexTTL, func() error {
			fresh, fetchErr := s.paginate(ctx, page, s.postRepo.List)
			if fetchErr != nil {
				return fetchErr
			}
			cached = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &cached, nil
	}
	return s.paginate(ctx, page, s.postRepo.List)
}

// GroupPosts returns the group identified by slug together with one page of
// its posts.
func (s *FeedService) GroupPosts(ctx context.Context, slug string, page int) (*models.Group, *models.PostPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.paginate(ctx, page, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// AuthorPosts returns the author identified by username together with one
// page of their posts.
func (s *FeedService) AuthorPosts(ctx context.Context, username string, page int) (*models.User, *models.PostPage, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.paginate(ctx, page, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
	})
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

// Feed returns one page of posts written by the authors the given user
// follows. An empty follow set yields an empty first page, not an error.
func (s *FeedService) Feed(ctx context.Context, userID uint, page int) (*models.PostPage, error) {
	return s.paginate(ctx, page, func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
		return s.postRepo.ListFeed(ctx, userID, limit, offset)
	})
}

type pageFetcher func(ctx context.Context, limit, offset int) ([]*models.Post, int64, error)

// paginate fetches one page from fetch and fills in the page envelope.
// Page numbers below one are treated as one, and a number past the end is
// clamped to the last page, which costs a second fetch in that rare case.
func (s *FeedService) paginate(ctx context.Context, page int, fetch pageFetcher) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := fetch(ctx, s.pageSize, (page-1)*s.pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
		items, total, err = fetch(ctx, s.pageSize, (page-1)*s.pageSize)
		if err != nil {
			return nil, err
		}
	}

	if items == nil {
		items = []*models.Post{}
	}
	return &models.PostPage{
		Items:      items,
		Page:       page,
		PageSize:   s.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
