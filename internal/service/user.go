package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/askbox/askbox/internal/language"
	"github.com/askbox/askbox/internal/model"
	"github.com/askbox/askbox/internal/repository"
	"github.com/askbox/askbox/internal/social"
	"github.com/askbox/askbox/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
	profiles       *ProfileCache
}

func NewUserService(userRepository repository.UserRepository, profiles *ProfileCache) *UserService {
	return &UserService{
		userRepository: userRepository,
		profiles:       profiles,
	}
}

// GetOrCreate returns the user for clerkID, creating the row on first use.
// acceptLanguage seeds the locale of a new user.
func (s *UserService) GetOrCreate(ctx context.Context, clerkID, acceptLanguage string) (*model.User, error) {
	if clerkID == "" {
		return nil, ErrUnauthenticated
	}

	locale := language.MatchLocale(acceptLanguage)
	user, err := s.userRepository.GetOrCreate(ctx, &model.User{
		ClerkID:               clerkID,
		QuestionSecurityLevel: model.SecurityAnyone,
		Locale:                &locale,
		NotifyNewQuestions:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	return user, nil
}

func (s *UserService) ByClerkID(ctx context.Context, clerkID string) (*model.User, error) {
	return s.userRepository.ByClerkID(ctx, clerkID)
}

// ByUsername resolves a public profile, going through the profile cache.
func (s *UserService) ByUsername(ctx context.Context, username string) (*model.User, error) {
	username = validation.NormalizeUsername(username)
	if username == "" {
		return nil, ErrUserNotFound
	}

	if user, ok := s.profiles.Get(username); ok {
		return user, nil
	}

	user, err := s.userRepository.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	s.profiles.Add(user)
	return user, nil
}

// ProfileUpdate carries the fields of a profile edit. Nil fields are left
// unchanged. An empty Locale or SignatureColor clears the value.
type ProfileUpdate struct {
	Username           *string
	DisplayName        *string
	Bio                *string
	Locale             *string
	SignatureColor     *string
	SocialLinks        *social.FormState
	NotifyNewQuestions *bool
}

func (s *UserService) UpdateProfile(ctx context.Context, clerkID string, update ProfileUpdate) (*model.User, error) {
	user, err := s.userRepository.ByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	previousUsername := user.Username

	if update.Username != nil {
		username := validation.NormalizeUsername(*update.Username)
		err = validation.ValidateUsername(username)
		if err != nil {
			return nil, err
		}
		user.Username = &username
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		err = validation.ValidateDisplayName(name)
		if err != nil {
			return nil, err
		}
		user.DisplayName = name
	}

	if update.Bio != nil {
		bio := validation.NormalizeContent(*update.Bio)
		err = validation.ValidateBio(bio)
		if err != nil {
			return nil, err
		}
		user.Bio = bio
	}

	if update.Locale != nil {
		user.Locale = nil
		if *update.Locale != "" {
			locale := language.MatchLocale(*update.Locale)
			user.Locale = &locale
		}
	}

	if update.SignatureColor != nil {
		user.SignatureColor = nil
		if *update.SignatureColor != "" {
			color := strings.ToLower(*update.SignatureColor)
			err = validation.ValidateSignatureColor(color)
			if err != nil {
				return nil, err
			}
			user.SignatureColor = &color
		}
	}

	if update.SocialLinks != nil {
		user.SocialLinks = social.BuildPayload(*update.SocialLinks)
	}

	if update.NotifyNewQuestions != nil {
		user.NotifyNewQuestions = *update.NotifyNewQuestions
	}

	err = s.userRepository.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.profiles.Invalidate(previousUsername, user.Username)
	return user, nil
}

func (s *UserService) UpdateSecurityLevel(ctx context.Context, clerkID, raw string) (*model.User, error) {
	level, err := model.ParseSecurityLevel(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.ByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	user.QuestionSecurityLevel = level
	err = s.userRepository.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.profiles.Invalidate(user.Username)
	return user, nil
}

// SetReferrer records the user who referred clerkID. It can only be set once
// and never to the user themselves.
func (s *UserService) SetReferrer(ctx context.Context, clerkID, referrerUsername string) error {
	referrer, err := s.userRepository.ByUsername(ctx, validation.NormalizeUsername(referrerUsername))
	if err != nil {
		return err
	}

	if referrer.ClerkID == clerkID {
		return ErrSelfReferral
	}

	return s.userRepository.SetReferrer(ctx, clerkID, referrer.ClerkID)
}

// IdentityUser is the subset of an identity provider user record that is
// mirrored locally.
type IdentityUser struct {
	ClerkID   string
	Username  string
	FirstName string
	LastName  string
	ImageURL  string
	Email     string
}

func (u IdentityUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SyncFromIdentity mirrors identity provider fields onto the local user,
// creating it when needed. Avatar and email always follow the provider.
// Username and display name are only filled in while still empty, so local
// edits win.
func (s *UserService) SyncFromIdentity(ctx context.Context, identity IdentityUser) (*model.User, error) {
	user, err := s.GetOrCreate(ctx, identity.ClerkID, "")
	if err != nil {
		return nil, err
	}

	if validation.ValidateAvatarURL(identity.ImageURL) == nil {
		user.AvatarURL = identity.ImageURL
	}

	user.Email = nil
	if identity.Email != "" {
		err = validation.ValidateEmail(identity.Email)
		if err == nil {
			email := identity.Email
			user.Email = &email
		} else {
			slog.Warn("ignoring invalid identity email", "clerk_id", identity.ClerkID, "error", err)
		}
	}

	if user.DisplayName == "" {
		name := identity.FullName()
		if validation.ValidateDisplayName(name) == nil {
			user.DisplayName = name
		}
	}

	claimedUsername := false
	if !user.HasUsername() && identity.Username != "" {
		username := validation.NormalizeUsername(identity.Username)
		if validation.ValidateUsername(username) == nil {
			user.Username = &username
			claimedUsername = true
		}
	}

	err = s.userRepository.Update(ctx, user)
	if errors.Is(err, ErrDuplicateUsername) && claimedUsername {
		slog.Warn("identity username already taken, leaving unset", "clerk_id", identity.ClerkID, "username", *user.Username)
		user.Username = nil
		err = s.userRepository.Update(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	s.profiles.Invalidate(user.Username)
	return user, nil
}

// DeleteByClerkID hard-deletes the user. Received questions and their
// answers are removed with it.
func (s *UserService) DeleteByClerkID(ctx context.Context, clerkID string) error {
	user, err := s.userRepository.ByClerkID(ctx, clerkID)
	if err != nil {
		return err
	}

	err = s.userRepository.Delete(ctx, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.profiles.Invalidate(user.Username)
	slog.Info("user deleted", "clerk_id", clerkID)
	return nil
}
