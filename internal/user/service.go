package user

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/storage"
)

// FileStore is the slice of the storage layer the auth flows need.
type FileStore interface {
	Save(category storage.Category, ownerID string, fh *multipart.FileHeader) (string, error)
	Delete(relPath string) error
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput, image *multipart.FileHeader) (*AuthResponse, error)
	Login(ctx context.Context, in LoginInput) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput, image *multipart.FileHeader) (*UserResponse, error)
	ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error
}

type userService struct {
	repo  UserRepository
	files FileStore
}

func NewService(repo UserRepository, files FileStore) UserService {
	return &userService{repo: repo, files: files}
}

func (s *userService) Register(ctx context.Context, in RegisterInput, image *multipart.FileHeader) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if err := validateRegister(in); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(in.Email)
	if err != nil {
		log.WithError(err).Error("Failed to check email uniqueness")
		return nil, err
	}
	if exists {
		return nil, apperror.ErrDuplicateEmail
	}

	// The image is written before the user row exists, so every failure
	// from here on has to remove it again.
	imagePath := ""
	if image != nil {
		imagePath, err = s.files.Save(storage.CategoryProfile, storage.AnonOwner, image)
		if err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		s.cleanupFile(ctx, imagePath)
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Password:     hash,
		ProfileImage: imagePath,
	}

	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		s.cleanupFile(ctx, imagePath)
		return nil, err
	}

	token, err := auth.GenerateJWT(u.ID.String(), auth.TokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to issue token for new user")
		return nil, err
	}

	log.Info("User registered", "user_id", u.ID.String())
	return &AuthResponse{User: toResponse(u), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	// Unknown email and wrong password answer identically so accounts
	// cannot be enumerated.
	if u == nil || !auth.CheckPassword(u.Password, in.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), auth.TokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to issue token on login")
		return nil, err
	}

	return &AuthResponse{User: toResponse(u), Token: token}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.ErrNotFound
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput, image *multipart.FileHeader) (*UserResponse, error) {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.ErrNotFound
	}

	if in.Name != nil {
		if msg := validateName(*in.Name); msg != "" {
			return nil, apperror.Validation("name", msg)
		}
		u.Name = *in.Name
	}
	// in.Email and in.Password are stripped: credentials never change
	// through this path.

	oldImage := u.ProfileImage
	newImage := ""
	if image != nil {
		newImage, err = s.files.Save(storage.CategoryProfile, u.ID.String(), image)
		if err != nil {
			return nil, err
		}
		u.ProfileImage = newImage
	}

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to update profile")
		s.cleanupFile(ctx, newImage)
		return nil, err
	}

	// The previous image goes away only once the new one is persisted on
	// the row.
	if newImage != "" && oldImage != "" {
		s.cleanupFile(ctx, oldImage)
	}

	resp := toResponse(u)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	log := config.WithContext(ctx)

	id, err := uuid.Parse(userID)
	if err != nil {
		return apperror.ErrInvalidToken
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperror.ErrNotFound
	}

	if !auth.CheckPassword(u.Password, in.OldPassword) {
		return apperror.ErrInvalidCredentials
	}

	if msg := validateNewPassword(in.NewPassword); msg != "" {
		return apperror.Validation("new_password", msg)
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		log.WithError(err).Error("Failed to hash new password")
		return err
	}

	u.Password = hash
	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to persist new password")
		return err
	}

	log.Info("Password changed", "user_id", u.ID.String())
	return nil
}

func (s *userService) cleanupFile(ctx context.Context, relPath string) {
	if relPath == "" {
		return
	}
	if err := s.files.Delete(relPath); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to clean up file %s", relPath)
	}
}

func toResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}
