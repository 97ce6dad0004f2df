package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
	"github.com/ewei/budgetgroups-server/internal/models"
)

// Authentication methods

func (s *DefaultService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, upstream(err, "error checking user existence")
	}

	if existingUser != nil {
		return nil, apperrors.New(apperrors.Conflict, "user with this email already exists")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Upstream, err, "error hashing password")
	}

	// Create the user
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, upstream(err, "error creating user")
	}

	return &models.AuthResponse{
		Status: "success",
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Get the user
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, upstream(err, "error getting user")
	}

	if user == nil {
		return nil, apperrors.New(apperrors.Unauthorized, "invalid email or password")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.New(apperrors.Unauthorized, "invalid email or password")
	}

	// Generate JWT token
	token, err := s.generateJWT(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Upstream, err, "error generating token")
	}

	return &models.AuthResponse{
		Status:    "success",
		UserID:    user.ID,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": user.ID, // subject
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
