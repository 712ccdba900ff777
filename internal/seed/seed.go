package seed

import (
	"fmt"
	"log"
	"math/rand"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with fake users, posts, comments and
// interactions. Stored counters are written through the same ledger paths the
// application uses, so seeded data satisfies the counter/ledger consistency
// the rest of the system assumes.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}

	if opts.ShouldClean {
		log.Println("Cleaning existing data...")
		for _, table := range []string{"saves", "reposts", "likes", "comments", "posts", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	f := NewFactory(db)

	password, err := HashPassword("password123")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	log.Printf("Creating %d users...", opts.NumUsers)
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(password)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	log.Printf("Creating %d posts...", opts.NumPosts)
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post, err := f.CreatePost(users[rand.Intn(len(users))])
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}

	log.Println("Creating comments and replies...")
	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < rand.Intn(5); i++ {
			comment, err := f.CreateComment(users[rand.Intn(len(users))], models.TargetPost, post.ID)
			if err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments = append(comments, comment)

			// Occasionally nest a reply under the fresh comment.
			if rand.Intn(3) == 0 {
				reply, err := f.CreateComment(users[rand.Intn(len(users))], models.TargetComment, comment.ID)
				if err != nil {
					return fmt.Errorf("create reply: %w", err)
				}
				comments = append(comments, reply)
			}
		}
	}

	log.Println("Creating likes, reposts and saves...")
	if err := seedInteractions(db, users, posts, comments); err != nil {
		return err
	}

	log.Printf("Seeding complete: %d users, %d posts, %d comments", len(users), len(posts), len(comments))
	return nil
}

// seedInteractions writes ledger rows and bumps the matching stored counters
// inside one transaction per target so counts and rows never drift.
func seedInteractions(db *gorm.DB, users []*models.User, posts []*models.Post, comments []*models.Comment) error {
	for _, post := range posts {
		likers := pickUsers(users, rand.Intn(len(users)/2+1))
		for _, u := range likers {
			err := db.Transaction(func(tx *gorm.DB) error {
				like := &models.Like{UserID: u.ID, TargetKind: models.TargetPost, TargetID: post.ID}
				if err := tx.Create(like).Error; err != nil {
					return err
				}
				return tx.Model(&models.Post{}).Where("id = ?", post.ID).
					UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed post like: %w", err)
			}
		}

		for _, u := range pickUsers(users, rand.Intn(4)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Repost{UserID: u.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Post{}).Where("id = ?", post.ID).
					UpdateColumn("reposts_count", gorm.Expr("reposts_count + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed repost: %w", err)
			}
		}

		for _, u := range pickUsers(users, rand.Intn(4)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&models.Save{UserID: u.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
				return tx.Model(&models.Post{}).Where("id = ?", post.ID).
					UpdateColumn("saves_count", gorm.Expr("saves_count + 1")).Error
			})
			if err != nil {
				return fmt.Errorf("seed save: %w", err)
			}
		}
	}

	for _, comment := range comments {
		for _, u := range pickUsers(users, rand.Intn(3)) {
			err := db.Transaction(func(tx *gorm.DB) error {
				like := &models.Like{UserID: u.ID, TargetKind: models.TargetComment, TargetID: comment.ID}
				if err := tx.Create(like).Error; err != nil {
					return err
				}
				cols := map[string]interface{}{
					"likes_count": gorm.Expr("likes_count + 1"),
				}
				if u.ID == comment.UserID {
					cols["author_like"] = true
				}
				return tx.Model(&models.Comment{}).Where("id = ?", comment.ID).
					UpdateColumns(cols).Error
			})
			if err != nil {
				return fmt.Errorf("seed comment like: %w", err)
			}
		}
	}

	return nil
}

// pickUsers returns n distinct users chosen at random.
func pickUsers(users []*models.User, n int) []*models.User {
	if n >= len(users) {
		n = len(users)
	}
	perm := rand.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
