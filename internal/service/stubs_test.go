package service

import (
	"context"

	"ripple/internal/models"
)

// postRepoStub implements repository.PostRepository with overridable
// function fields. Unset fields return zero values.
type postRepoStub struct {
	createFn           func(ctx context.Context, post *models.Post) error
	getByIDFn          func(ctx context.Context, id uint) (*models.Post, error)
	getByUserIDFn      func(ctx context.Context, userID uint) ([]*models.Post, error)
	listFn             func(ctx context.Context, limit int) ([]*models.Post, error)
	listWindowFn       func(ctx context.Context, limit int, before, after *int64) ([]*models.Post, error)
	countSinceFn       func(ctx context.Context, timestamp int64) (int, error)
	countByUserIDFn    func(ctx context.Context, userID uint) (int, error)
	sumLikesByAuthorFn func(ctx context.Context, userID uint) (int, error)
	deleteFn           func(ctx context.Context, id uint) error
	hasLikedFn         func(ctx context.Context, postID, userID uint) (bool, error)
	likeFn             func(ctx context.Context, postID, userID uint) error
	unlikeFn           func(ctx context.Context, postID, userID uint) error
	countLikesFn       func(ctx context.Context, postID uint) (int, error)
	hasRepostedFn      func(ctx context.Context, postID, userID uint) (bool, error)
	addRepostFn        func(ctx context.Context, postID, userID uint) error
	removeRepostFn     func(ctx context.Context, postID, userID uint) error
	countRepostsFn     func(ctx context.Context, postID uint) (int, error)
	findRepostRowFn    func(ctx context.Context, originalID, userID uint) (*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	return nil
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (s *postRepoStub) List(ctx context.Context, limit int) ([]*models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit)
	}
	return nil, nil
}

func (s *postRepoStub) ListWindow(ctx context.Context, limit int, before, after *int64) ([]*models.Post, error) {
	if s.listWindowFn != nil {
		return s.listWindowFn(ctx, limit, before, after)
	}
	return nil, nil
}

func (s *postRepoStub) CountSince(ctx context.Context, timestamp int64) (int, error) {
	if s.countSinceFn != nil {
		return s.countSinceFn(ctx, timestamp)
	}
	return 0, nil
}

func (s *postRepoStub) CountByUserID(ctx context.Context, userID uint) (int, error) {
	if s.countByUserIDFn != nil {
		return s.countByUserIDFn(ctx, userID)
	}
	return 0, nil
}

func (s *postRepoStub) SumLikesByAuthor(ctx context.Context, userID uint) (int, error) {
	if s.sumLikesByAuthorFn != nil {
		return s.sumLikesByAuthorFn(ctx, userID)
	}
	return 0, nil
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	if s.hasLikedFn != nil {
		return s.hasLikedFn(ctx, postID, userID)
	}
	return false, nil
}

func (s *postRepoStub) Like(ctx context.Context, postID, userID uint) error {
	if s.likeFn != nil {
		return s.likeFn(ctx, postID, userID)
	}
	return nil
}

func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uint) error {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, postID, userID)
	}
	return nil
}

func (s *postRepoStub) CountLikes(ctx context.Context, postID uint) (int, error) {
	if s.countLikesFn != nil {
		return s.countLikesFn(ctx, postID)
	}
	return 0, nil
}

func (s *postRepoStub) HasReposted(ctx context.Context, postID, userID uint) (bool, error) {
	if s.hasRepostedFn != nil {
		return s.hasRepostedFn(ctx, postID, userID)
	}
	return false, nil
}

func (s *postRepoStub) AddRepost(ctx context.Context, postID, userID uint) error {
	if s.addRepostFn != nil {
		return s.addRepostFn(ctx, postID, userID)
	}
	return nil
}

func (s *postRepoStub) RemoveRepost(ctx context.Context, postID, userID uint) error {
	if s.removeRepostFn != nil {
		return s.removeRepostFn(ctx, postID, userID)
	}
	return nil
}

func (s *postRepoStub) CountReposts(ctx context.Context, postID uint) (int, error) {
	if s.countRepostsFn != nil {
		return s.countRepostsFn(ctx, postID)
	}
	return 0, nil
}

func (s *postRepoStub) FindRepostRow(ctx context.Context, originalID, userID uint) (*models.Post, error) {
	if s.findRepostRowFn != nil {
		return s.findRepostRowFn(ctx, originalID, userID)
	}
	return nil, nil
}

// userRepoStub implements repository.UserRepository with overridable
// function fields.
type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}
