package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userModel is the gorm mapping of the users table.
type userModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Email     string
	Phone     string
	FirstName string
	BirthDay  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	return r.first("find user by email or phone",
		r.db.WithContext(ctx).Where("email = ?", email).Or("phone = ?", phone))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first("find user by email", r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.first("find user by phone", r.db.WithContext(ctx).Where("phone = ?", phone))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		// The column is a uuid; anything else cannot match.
		return nil, domain.ErrUserNotFound
	}
	return r.first("find user by id", r.db.WithContext(ctx).Where("id = ?", id))
}

// Create inserts u, assigning a new id when u.ID is empty. The password must
// already be hashed.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	m := userModel{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		BirthDay:  u.BirthDay,
		Password:  u.Password,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return storeError("create user", err)
	}

	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepository) first(op string, q *gorm.DB) (*domain.User, error) {
	var m userModel
	if err := q.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError(op, err)
	}
	return toDomain(&m), nil
}

func toDomain(m *userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Phone:     m.Phone,
		FirstName: m.FirstName,
		BirthDay:  m.BirthDay,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
