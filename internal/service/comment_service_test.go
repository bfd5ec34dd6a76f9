package service

import (
	"context"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment_Validation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	_, err := svc.AddComment(ctx, AddCommentInput{UserID: 1, PostID: 1, Text: "  "})
	assertValidationError(t, err)

	_, err = svc.AddComment(ctx, AddCommentInput{UserID: 1, PostID: 1, Text: strings.Repeat("a", 2001)})
	assertValidationError(t, err)
}

func TestCommentService_AddComment_MissingPost(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewCommentService(noopCommentRepo(), postRepo)
	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, PostID: 99, Text: "hello"})
	assert.True(t, models.IsNotFound(err))
}

func TestCommentService_AddComment_Success(t *testing.T) {
	commentRepo := noopCommentRepo()
	var created *models.Comment
	commentRepo.createFn = func(_ context.Context, comment *models.Comment) error {
		comment.ID = 3
		created = comment
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		require.Equal(t, uint(3), id)
		return created, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comment, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 2, PostID: 1, Text: "Lovely"})

	require.NoError(t, err)
	assert.Equal(t, uint(2), comment.AuthorID)
	assert.Equal(t, uint(1), comment.PostID)
}

func TestCommentService_DeleteComment(t *testing.T) {
	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, AuthorID: 2}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	ctx := context.Background()

	err := svc.DeleteComment(ctx, 99, 3, false)
	assert.True(t, models.IsForbidden(err))

	assert.NoError(t, svc.DeleteComment(ctx, 2, 3, false))
	assert.NoError(t, svc.DeleteComment(ctx, 99, 3, true))
}
