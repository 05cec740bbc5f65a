package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// SysAccessScope is the capability claim granted by a valid admin PIN.
const SysAccessScope = "sys_access"

var (
	// ErrInvalidCredentials covers both unknown accounts and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidPIN indicates a failed system-view capability exchange.
	ErrInvalidPIN = errors.New("invalid admin pin")
)

// AuthConfig carries the token parameters the auth service needs.
type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AdminPIN          string
	SysAccessTokenTTL time.Duration
}

// AuthService handles registration, login and the system-view capability grant.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.AccountResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
	// GrantSysAccess exchanges the shared admin PIN for a short-lived token
	// scoped to the system view. The capability is explicit per request
	// chain, never ambient session state.
	GrantSysAccess(ctx context.Context, userID uint, role, pin string) (dto.SysAccessResponse, error)
}

type authService struct {
	students  repository.StudentRepository
	mentors   repository.MentorRepository
	cfg       AuthConfig
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(students repository.StudentRepository, mentors repository.MentorRepository, cfg AuthConfig, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		students:  students,
		mentors:   mentors,
		cfg:       cfg,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	switch payload.Role {
	case models.RoleStudent:
		if _, err := s.students.GetByEmail(ctx, email); err == nil {
			return dto.AccountResponse{}, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, err
		}

		semester := payload.Semester
		if semester <= 0 {
			semester = 1
		}

		student := models.Student{
			Name:         strings.TrimSpace(payload.Name),
			Email:        email,
			PasswordHash: string(hash),
			Major:        strings.TrimSpace(payload.Major),
			Semester:     semester,
		}
		if err := s.students.Create(ctx, &student); err != nil {
			return dto.AccountResponse{}, err
		}

		return studentAccountResponse(student), nil

	case models.RoleMentor:
		if _, err := s.mentors.GetByEmail(ctx, email); err == nil {
			return dto.AccountResponse{}, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccountResponse{}, err
		}

		mentor := models.Mentor{
			Name:          strings.TrimSpace(payload.Name),
			Email:         email,
			PasswordHash:  string(hash),
			ExpertiseArea: strings.TrimSpace(payload.ExpertiseArea),
		}
		if err := s.mentors.Create(ctx, &mentor); err != nil {
			return dto.AccountResponse{}, err
		}

		return mentorAccountResponse(mentor), nil

	default:
		return dto.AccountResponse{}, ErrInvalidCredentials
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))

	var account dto.AccountResponse
	var passwordHash string

	switch payload.Role {
	case models.RoleStudent:
		student, err := s.students.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TokenResponse{}, ErrInvalidCredentials
			}
			return dto.TokenResponse{}, err
		}
		account = studentAccountResponse(student)
		passwordHash = student.PasswordHash

	case models.RoleMentor:
		mentor, err := s.mentors.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TokenResponse{}, ErrInvalidCredentials
			}
			return dto.TokenResponse{}, err
		}
		account = mentorAccountResponse(mentor)
		passwordHash = mentor.PasswordHash

	default:
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(payload.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(jwt.MapClaims{
		"sub":  account.ID,
		"role": account.Role,
		"name": account.Name,
	}, s.cfg.AccessTokenTTL)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	return dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.AccessTokenTTL.Seconds()),
		Account:     account,
	}, nil
}

func (s *authService) GrantSysAccess(ctx context.Context, userID uint, role, pin string) (dto.SysAccessResponse, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.cfg.AdminPIN)) != 1 {
		s.logger.Warn().Uint("user_id", userID).Str("role", role).Msg("rejected sys access attempt")
		return dto.SysAccessResponse{}, ErrInvalidPIN
	}

	token, err := s.signToken(jwt.MapClaims{
		"sub":   userID,
		"role":  role,
		"scope": SysAccessScope,
	}, s.cfg.SysAccessTokenTTL)
	if err != nil {
		return dto.SysAccessResponse{}, err
	}

	return dto.SysAccessResponse{
		SysToken:  token,
		ExpiresIn: int(s.cfg.SysAccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) signToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	now := s.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func studentAccountResponse(student models.Student) dto.AccountResponse {
	return dto.AccountResponse{
		ID:       student.ID,
		Name:     student.Name,
		Email:    student.Email,
		Role:     models.RoleStudent,
		Major:    student.Major,
		Semester: student.Semester,
	}
}

func mentorAccountResponse(mentor models.Mentor) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            mentor.ID,
		Name:          mentor.Name,
		Email:         mentor.Email,
		Role:          models.RoleMentor,
		ExpertiseArea: mentor.ExpertiseArea,
	}
}
