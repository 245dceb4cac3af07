package service

import (
	"context"
	"regexp"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/internal/dto"
	"github.com/ayaxan7/seller-dashboard/internal/repository"
	"github.com/ayaxan7/seller-dashboard/internal/session"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/ayaxan7/seller-dashboard/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthServiceImpl struct {
	repo     repository.UserRepository
	config   config.Config
	sessions *session.Store
}

func CreateNewAuthService(repo repository.UserRepository, config config.Config, sessions *session.Store) AuthService {
	return &AuthServiceImpl{repo: repo, config: config, sessions: sessions}
}

func (s *AuthServiceImpl) SignUp(ctx context.Context, payload dto.AuthRequest) (sess domain.Session, err error) {
	if payload.Email == "" || !emailPattern.MatchString(payload.Email) {
		return sess, errs.ErrClient
	}

	if len(payload.Password) < 6 {
		return sess, errs.ErrWeakPassword
	}

	user, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	if user.ID != 0 {
		return sess, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return sess, err
	}

	userEnt := domain.User{
		Email:          payload.Email,
		HashedPassword: string(hash),
		ExternalID:     ulid.Make().String(),
	}

	_, err = s.repo.AddUser(ctx, userEnt)
	if err != nil {
		return sess, err
	}

	sess = domain.Session{
		VendorID: userEnt.ExternalID,
		Email:    userEnt.Email,
	}
	s.sessions.Set(sess)

	if s.config.SMTPConfig.Host != "" {
		go s.sendWelcomeEmail(userEnt.Email)
	}

	return sess, nil
}

func (s *AuthServiceImpl) sendWelcomeEmail(recipient string) {
	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", recipient)
	message.SetHeader("Subject", "Welcome to Seller Dashboard")
	message.SetBody("text/plain", "Your vendor account has been created. You can now start listing products.")

	err := utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port)
	if err != nil {
		log.Error().Err(err).Str("component", "sendWelcomeEmail").Msg("")
	}
}

func (s *AuthServiceImpl) SignIn(ctx context.Context, payload dto.AuthRequest) (respPayload dto.LoginResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, payload.Email)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return respPayload, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(payload.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SignIn").Msg("")
		return respPayload, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID, user.Email, user.ExternalID, s.config.JWTSecret)
	if err != nil {
		return
	}

	s.sessions.Set(domain.Session{
		VendorID: user.ExternalID,
		Email:    user.Email,
	})

	respPayload.Token = token
	respPayload.VendorID = user.ExternalID
	respPayload.Email = user.Email

	return
}

// SignOut is idempotent; clearing an empty store is a no-op.
func (s *AuthServiceImpl) SignOut() {
	s.sessions.Clear()
}

func (s *AuthServiceImpl) IsLoggedIn() bool {
	return s.sessions.IsLoggedIn()
}
