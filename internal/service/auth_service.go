// Package service holds the domain rules between HTTP handlers and repositories.
package service

import (
	"context"
	"strings"
	"time"

	"alumnihub/internal/middleware"
	"alumnihub/internal/models"
	"alumnihub/internal/observability"
	"alumnihub/internal/repository"
	"alumnihub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo        repository.UserRepository
	jwtSecret       string
	tokenTTL        time.Duration
	strictPasswords func() bool
	revoke          func(ctx context.Context, jti string, ttl time.Duration) error
}

type SignupInput struct {
	FullName       string
	Email          string
	Phone          string
	Password       string
	UserType       models.UserType
	GraduationYear *int
	Language       string
	LinkedIn       string
	Skills         string
	Company        string
	Location       string
}

type LoginResult struct {
	Token  string
	Claims *middleware.TokenClaims
	User   *models.User
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	strictPasswords func() bool,
	revoke func(ctx context.Context, jti string, ttl time.Duration) error,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       jwtSecret,
		tokenTTL:        tokenTTL,
		strictPasswords: strictPasswords,
		revoke:          revoke,
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)

	if in.FullName == "" || in.Email == "" || in.Phone == "" || in.UserType == "" || in.Password == "" {
		return nil, models.NewValidationError("Required fields are missing")
	}
	if in.UserType != models.UserTypeStudent && in.UserType != models.UserTypeAlumni {
		return nil, models.NewValidationError("Invalid user type")
	}

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.GraduationYear != nil {
		if err := validation.ValidateGraduationYear(*in.GraduationYear); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if err := validation.ValidateLinkedIn(in.LinkedIn); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	switch in.UserType {
	case models.UserTypeAlumni:
		if in.Company == "" || in.Location == "" {
			return nil, models.NewValidationError("Alumni must provide company and location")
		}
	case models.UserTypeStudent:
		if in.Company != "" || in.Location != "" {
			return nil, models.NewValidationError("Students should not provide company or location")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FullName:       in.FullName,
		Email:          in.Email,
		Password:       string(hashed),
		Phone:          in.Phone,
		GraduationYear: in.GraduationYear,
		Language:       strings.TrimSpace(in.Language),
		LinkedIn:       strings.TrimSpace(in.LinkedIn),
		Skills:         strings.TrimSpace(in.Skills),
		UserType:       in.UserType,
		Company:        in.Company,
		Location:       in.Location,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.SignupsTotal.WithLabelValues(string(user.UserType)).Inc()
	return user, nil
}

func (s *AuthService) checkPassword(password string) error {
	if s.strictPasswords != nil && s.strictPasswords() {
		return validation.ValidateStrongPassword(password)
	}
	return validation.ValidatePassword(password)
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		observability.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}

	token, claims, err := middleware.IssueToken(s.jwtSecret, user, s.tokenTTL)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	return &LoginResult{Token: token, Claims: claims, User: user}, nil
}

// Logout revokes the token id for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *middleware.TokenClaims) error {
	if claims == nil || claims.JTI == "" {
		return models.NewUnauthorizedError("Invalid token")
	}
	if s.revoke == nil {
		return nil
	}
	if err := s.revoke(ctx, claims.JTI, time.Until(claims.ExpiresAt)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
