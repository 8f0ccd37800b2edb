package app

import (
	"context"
	"net/mail"

	"fittrack/internal/domain"
)

// UserService encapsulates account registration and profile CRUD.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	FullName     string            `json:"fullName"`
	Bio          string            `json:"bio"`
	FitnessLevel domain.Difficulty `json:"fitnessLevel"`
	HeightCM     float64           `json:"heightCm"`
	WeightKG     float64           `json:"weightKg"`
}

// UserUpdate carries partial-update fields; nil means "keep current value".
type UserUpdate struct {
	Username     *string            `json:"username"`
	Email        *string            `json:"email"`
	Password     *string            `json:"password"`
	FullName     *string            `json:"fullName"`
	Bio          *string            `json:"bio"`
	FitnessLevel *domain.Difficulty `json:"fitnessLevel"`
	HeightCM     *float64           `json:"heightCm"`
	WeightKG     *float64           `json:"weightKg"`
	IsActive     *bool              `json:"isActive"`
	IsAdmin      *bool              `json:"isAdmin"`
}

// Register validates the payload, pre-checks uniqueness, hashes the password
// and creates an active non-admin user. The cleartext password is never stored.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" {
		return nil, domain.Invalid("username is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.Invalid("invalid email address")
	}
	level := in.FitnessLevel
	if level == "" {
		level = domain.Beginner
	}
	if !level.Valid() {
		return nil, domain.Invalid("unknown fitness level %q", level)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	if existing, err := s.users.FindByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Duplicate("username")
	}
	if existing, err := s.users.FindByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Duplicate("email")
	}

	return s.users.Insert(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Bio:          in.Bio,
		FitnessLevel: level,
		HeightCM:     in.HeightCM,
		WeightKG:     in.WeightKG,
		IsActive:     true,
	})
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// List returns users with skip/limit pagination.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return s.users.List(ctx, skip, limit)
}

// Update applies the present fields of in to the user, leaving absent fields
// untouched. An incoming password is routed through the hasher.
func (s *UserService) Update(ctx context.Context, id int64, in UserUpdate) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != u.Username {
		if *in.Username == "" {
			return nil, domain.Invalid("username is required")
		}
		if existing, err := s.users.FindByUsername(ctx, *in.Username); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.Duplicate("username")
		}
		u.Username = *in.Username
	}
	if in.Email != nil && *in.Email != u.Email {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return nil, domain.Invalid("invalid email address")
		}
		if existing, err := s.users.FindByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.Duplicate("email")
		}
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.FitnessLevel != nil {
		if !in.FitnessLevel.Valid() {
			return nil, domain.Invalid("unknown fitness level %q", *in.FitnessLevel)
		}
		u.FitnessLevel = *in.FitnessLevel
	}
	if in.HeightCM != nil {
		u.HeightCM = *in.HeightCM
	}
	if in.WeightKG != nil {
		u.WeightKG = *in.WeightKG
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the user and every row the user owns (cascade policy).
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
