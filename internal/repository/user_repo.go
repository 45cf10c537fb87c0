package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"marketplace/internal/domain"
	"marketplace/internal/pkg/pagination"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilter struct {
	Role   domain.UserRole
	Status domain.UserStatus
	Search string
}

// NormalizeEmail lowercases and trims an address; uniqueness is checked on the result.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tid, err := tenantID(ctx)
	if err != nil {
		return err
	}
	u.TenantID = tid
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	if u.Status == "" {
		u.Status = domain.UserActive
	}
	return conflict(r.db.WithContext(ctx).Create(u).Error, ErrEmailTaken)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	q, _, err := scoped(ctx, r.db, "users")
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := q.Where("users.id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q, _, err := scoped(ctx, r.db, "users")
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := q.Where("users.email = ?", NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole) error {
	return r.update(ctx, id, map[string]any{"role": role})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *UserRepository) update(ctx context.Context, id int64, fields map[string]any) error {
	q, _, err := scoped(ctx, r.db, "users")
	if err != nil {
		return err
	}
	res := q.Model(&domain.User{}).Where("users.id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f UserFilter, p pagination.Params) ([]domain.User, int64, error) {
	q, _, err := scoped(ctx, r.db, "users")
	if err != nil {
		return nil, 0, err
	}
	q = q.Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("users.role = ?", f.Role)
	}
	if f.Status != "" {
		q = q.Where("users.status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := likePattern(strings.ToLower(s))
		q = q.Where("(LOWER(users.email) LIKE ? ESCAPE '\\' OR LOWER(users.name) LIKE ? ESCAPE '\\')", like, like)
	}
	return paginate[domain.User](ctx, q, p, "users.created_at DESC, users.id DESC")
}
