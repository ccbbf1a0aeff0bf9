package postgres

import (
	"context"
	"strings"
	"time"

	"manero/internal/domain/entity"
	domainerrors "manero/internal/domain/errors"
	"manero/internal/domain/repository"
	"manero/internal/errors"
	"manero/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	*gormRepository[model.UserModel, entity.User]
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		gormRepository: &gormRepository[model.UserModel, entity.User]{
			db:   db,
			name: "user",
			columns: map[string]string{
				repository.UserFieldID:    "id",
				repository.UserFieldEmail: "email",
			},
			order:      "created_at ASC",
			toDomain:   toUserDomain,
			fromDomain: fromUserDomain,
			afterCreate: func(m *model.UserModel, u *entity.User) {
				u.ID = m.ID
				u.CreatedAt = m.CreatedAt
				u.UpdatedAt = m.UpdatedAt
			},
		},
	}
}

// Create persists a new user. A duplicate email maps to ErrUserAlreadyExists.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := repo.gormRepository.Create(ctx, user)
	if errors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("failed to create user")
	}

	return err
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := repo.Read(ctx, repository.Where(repository.UserFieldID, id))
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}

	return user, err
}

// FindByEmail retrieves a user by email, ignoring case and surrounding spaces.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Take(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// RecordFailedSignIn increments the failed counter and sets the lockout end
// once the counter reaches maxAttempts. maxAttempts <= 0 never locks.
func (repo *userRepository) RecordFailedSignIn(ctx context.Context, id uuid.UUID, maxAttempts int, lockoutEnd time.Time) error {
	updates := map[string]any{
		"access_failed_count": gorm.Expr("access_failed_count + 1"),
	}
	if maxAttempts > 0 {
		updates["lockout_end"] = gorm.Expr("CASE WHEN access_failed_count + 1 >= ? THEN ?::timestamptz ELSE lockout_end END", maxAttempts, lockoutEnd)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to record failed sign-in")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ResetFailedSignIn clears the failed attempt counter and any lockout.
func (repo *userRepository) ResetFailedSignIn(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"access_failed_count": 0,
			"lockout_end":         nil,
		}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to reset failed sign-in")
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		FullName:      data.FullName,
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		PasswordHash:  data.PasswordHash,
		OAuthProvider: entity.ProviderType(data.OAuthProvider),
		OAuthID:       data.OAuthID,
		SignIn: entity.SignInState{
			AccessFailedCount: data.AccessFailedCount,
			LockoutEnd:        data.LockoutEnd,
			TwoFactorEnabled:  data.TwoFactorEnabled,
			LoginDisabled:     data.LoginDisabled,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	id := data.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &model.UserModel{
		ID:                id,
		Email:             normalizeEmail(data.Email),
		FullName:          data.FullName,
		FirstName:         data.FirstName,
		LastName:          data.LastName,
		PasswordHash:      data.PasswordHash,
		OAuthProvider:     data.OAuthProvider.String(),
		OAuthID:           data.OAuthID,
		AccessFailedCount: data.SignIn.AccessFailedCount,
		LockoutEnd:        data.SignIn.LockoutEnd,
		TwoFactorEnabled:  data.SignIn.TwoFactorEnabled,
		LoginDisabled:     data.SignIn.LoginDisabled,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
