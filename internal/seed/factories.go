// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// spreadBack returns a timestamp up to maxDays in the past, for a realistic
// created_at distribution.
func (f *Factory) spreadBack(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a fake user with the shared development password.
func (f *Factory) CreateUser(password []byte) (*models.User, error) {
	user := &models.User{
		Username:       fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000)),
		FirstName:      gofakeit.FirstName(),
		LastName:       gofakeit.LastName(),
		HashedPassword: string(password),
		CreatedAt:      f.spreadBack(365),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a fake post for the given author.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	post := &models.Post{
		Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:    user.ID,
		CreatedAt: f.spreadBack(90),
	}
	if f.rnd.Intn(4) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", uuid.NewString())
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment under the given parent.
func (f *Factory) CreateComment(user *models.User, kind models.TargetKind, parentID uint) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    gofakeit.Sentence(f.rnd.Intn(15) + 3),
		UserID:     user.ID,
		ParentKind: kind,
		ParentID:   parentID,
		CreatedAt:  f.spreadBack(30),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// HashPassword hashes the shared development password once so seeding many
// users does not pay the bcrypt cost per user.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
