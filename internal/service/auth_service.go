package service

import (
	"crypto/sha256"
	"errors"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the account storage AuthService needs. Lookups report a
// missing user as gorm.ErrRecordNotFound.
type UserStore interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
}

type AuthService struct {
	UserRepo UserStore
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// preparePassword works around bcrypt's 72-byte input limit: longer
// passwords are digested with SHA-256 first.
func preparePassword(password string) []byte {
	b := []byte(password)
	if len(b) <= 72 {
		return b
	}
	sum := sha256.Sum256(b)
	return sum[:]
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(preparePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), preparePassword(password)) == nil
}

// Register creates the account and signs the user in immediately.
func (s *AuthService) Register(phone, password, name string) (*model.User, string, error) {
	_, err := s.UserRepo.FindByPhone(phone)
	if err == nil {
		return nil, "", util.ErrPhoneRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Phone:    phone,
		Name:     name,
		Password: hashed,
		Role:     model.RoleUser,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(phone, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByPhone(phone)
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if !CheckPassword(user.Password, password) {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
