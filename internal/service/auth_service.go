package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"projecthub/internal/model"
	"projecthub/pkg/util"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user and returns it with a signed token.
// The profile starts incomplete; onboarding fills it in later.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Email:           email,
		PasswordHash:    hash,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileComplete: false,
		CreatedAt:       time.Now(),
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(u.ID.Hex(), s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Login checks user credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(u.ID.Hex(), s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// CurrentUser resolves the authenticated principal to its profile record.
// Callers use ProfileComplete to decide whether onboarding is still required.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	u, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UsernameAvailable reports whether no user holds the username yet.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// CompleteProfile stores the onboarding fields and flips profileComplete.
func (s *AuthService) CompleteProfile(ctx context.Context, userID, username, university, phoneNumber string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	if err := s.users.UpdateProfile(ctx, oid, username, university, phoneNumber); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
