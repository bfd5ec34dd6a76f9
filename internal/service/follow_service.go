package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// FollowService manages the follow graph between readers and authors.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow subscribes userID to the author named by username. Following
// yourself is silently ignored, and following someone twice leaves a single
// edge; neither case is an error.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == userID {
		return author, nil
	}

	if err := s.followRepo.Follow(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the subscription; removing one that does not exist is a
// no-op.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

// IsFollowing reports whether userID follows the author. An anonymous
// viewer (userID zero) follows nobody.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 || userID == authorID {
		return false, nil
	}
	return s.followRepo.IsFollowing(ctx, userID, authorID)
}

// ListFollowing returns the authors the user follows.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

// ListFollowers returns the users following the author.
func (s *FollowService) ListFollowers(ctx context.Context, authorID uint) ([]models.User, error) {
	return s.followRepo.ListFollowers(ctx, authorID)
}
