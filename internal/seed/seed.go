// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays bounds how far back generated post timestamps spread.
	MaxDays int
}

// Seed populates the database with demo users, posts, likes, and reposts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d demo users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts, opts.MaxDays)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d demo posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and reposts: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Repost{}, &models.Like{}, &models.Post{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	// One shared hash keeps seeding fast; every demo account logs in with
	// the same password.
	hash, err := bcrypt.GenerateFromPassword([]byte("passw0rd"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Name:         gofakeit.Name(),
			PasswordHash: string(hash),
			Avatar:       fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, n, maxDays int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	if maxDays <= 0 {
		maxDays = 30
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]

		// Spread timestamps over the past maxDays for a realistic feed.
		back := time.Duration(rand.Intn(maxDays*24*60)) * time.Minute
		post := &models.Post{
			UserID:     author.ID,
			UserName:   author.Name,
			UserAvatar: author.Avatar,
			Content:    gofakeit.Sentence(rand.Intn(20) + 3),
			Timestamp:  time.Now().Add(-back).UnixMilli(),
		}
		if rand.Intn(3) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// createEngagement sprinkles likes over posts and turns a fraction of them
// into reposts, materializing the synthetic repost rows the same way the
// feed service does.
func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	likeCount := 0
	for _, post := range posts {
		for _, user := range users {
			if rand.Intn(4) != 0 {
				continue
			}
			like := &models.Like{PostID: post.ID, UserID: user.ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
			likeCount++
		}
	}
	log.Printf("%d likes created", likeCount)

	repostCount := 0
	for _, post := range posts {
		if rand.Intn(5) != 0 {
			continue
		}
		reposter := users[rand.Intn(len(users))]
		if reposter.ID == post.UserID {
			continue
		}

		marker := &models.Repost{PostID: post.ID, UserID: reposter.ID}
		if err := db.Create(marker).Error; err != nil {
			return err
		}
		row := &models.Post{
			UserID:     reposter.ID,
			UserName:   reposter.Name,
			UserAvatar: reposter.Avatar,
			Content:    post.Content,
			ImageURL:   post.ImageURL,
			Timestamp:  post.Timestamp + int64(rand.Intn(86_400_000)),
			OriginalID: &post.ID,
			IsRepost:   true,
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
		repostCount++
	}
	log.Printf("%d reposts created", repostCount)

	return nil
}
