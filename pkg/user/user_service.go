package user

import (
	"Recipe-App-API/domain"
	"Recipe-App-API/entities"
	"Recipe-App-API/internal/utils"
	"Recipe-App-API/internal/utils/mailing"
	"Recipe-App-API/pkg/jwt"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		CreateSuperuser(ctx context.Context, req domain.CreateSuperuserRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		validator      *validator.Validate
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, validator *validator.Validate) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		validator:      validator,
	}
}

// normalizeEmail lower-cases the address the way the account store expects
// to match on login.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) createUser(ctx context.Context, email, password, name string, isStaff, isSuperuser bool) (*entities.User, error) {
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	if err := s.validator.Var(email, "email"); err != nil {
		return nil, domain.ErrEmailInvalid
	}
	if len(password) < 5 {
		return nil, domain.ErrPasswordTooShort
	}

	email = normalizeEmail(email)

	exists, err := s.userRepository.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		Password:    string(hashed),
		IsActive:    true,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, false, false)
	if err != nil {
		return domain.UserResponse{}, err
	}

	// Welcome mail is best effort; registration never waits on SMTP.
	if utils.GetConfig("SMTP_HOST") != "" {
		go func(email, name string) {
			body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Happy cooking!</p>", name)
			if err := mailing.SendMail(email, "Welcome to Recipe App", body); err != nil {
				log.Printf("failed to send welcome mail to %s: %v", email, err)
			}
		}(user.Email, user.Name)
	}

	return domain.UserResponse{Email: user.Email, Name: user.Name}, nil
}

func (s *userService) CreateSuperuser(ctx context.Context, req domain.CreateSuperuserRequest) (domain.UserResponse, error) {
	if req.IsStaff != nil && !*req.IsStaff {
		return domain.UserResponse{}, domain.ErrSuperuserFlags
	}
	if req.IsSuperuser != nil && !*req.IsSuperuser {
		return domain.UserResponse{}, domain.ErrSuperuserFlags
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.Name, true, true)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return domain.UserResponse{Email: user.Email, Name: user.Name}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return domain.TokenResponse{}, domain.ErrCredentialsInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.TokenResponse{}, domain.ErrCredentialsInvalid
	}

	if !user.IsActive {
		return domain.TokenResponse{}, domain.ErrCredentialsInvalid
	}

	now := time.Now()
	if err := s.userRepository.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("failed to update last login for %s: %v", user.Email, err)
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String())
	return domain.TokenResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userUUID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}
	return domain.UserResponse{Email: user.Email, Name: user.Name}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userUUID)
	if err != nil {
		return domain.UserResponse{}, domain.ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < 5 {
			return domain.UserResponse{}, domain.ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return domain.UserResponse{Email: user.Email, Name: user.Name}, nil
}
