package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/api-sage/banco-digital/src/internal/security"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "Usuario o contraseña incorrectos"

var _ service_interfaces.AuthService = (*AuthService)(nil)

type AuthService struct {
	userRepo    repo_interfaces.UserRepository
	sessionRepo repo_interfaces.SessionRepository
	now         func() time.Time
}

func NewAuthService(userRepo repo_interfaces.UserRepository, sessionRepo repo_interfaces.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Login does not distinguish an unknown user from a wrong password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Info("auth service login validation failed", logger.Fields{
			"error": err.Error(),
		})
		return commons.ErrorResponse[models.LoginResponse](invalidCredentialsMessage), fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	user, err := s.userRepo.Find(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Info("auth service login rejected", logger.Fields{
				"userId": req.UserID,
			})
			return commons.ErrorResponse[models.LoginResponse](invalidCredentialsMessage), domain.ErrUnauthorized
		}
		logger.Error("auth service login lookup failed", err, logger.Fields{
			"userId": req.UserID,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	ok, err := security.Matches(user.PasswordHash, req.Password)
	if err != nil {
		logger.Error("auth service login compare failed", err, logger.Fields{
			"userId": user.ID,
		})
	}
	if !ok {
		logger.Info("auth service login rejected", logger.Fields{
			"userId": req.UserID,
		})
		return commons.ErrorResponse[models.LoginResponse](invalidCredentialsMessage), domain.ErrUnauthorized
	}

	session := domain.NewSession(uuid.NewString(), user.ID, s.now())
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		logger.Error("auth service create session failed", err, logger.Fields{
			"userId": user.ID,
		})
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}
	session.Notify(domain.Notification{
		Kind:    domain.NotificationSuccess,
		Message: fmt.Sprintf("¡Bienvenido/a %s!", user.Name),
	})

	response := models.LoginResponse{
		SessionID: session.ID,
		UserID:    user.ID,
		Name:      user.Name,
		View:      string(session.View()),
	}

	logger.Info("auth service login success", logger.Fields{
		"userId":    user.ID,
		"sessionId": session.ID,
	})

	return commons.SuccessResponse("login successful", response), nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) (commons.Response[models.LogoutResponse], error) {
	sessionID = strings.TrimSpace(sessionID)
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return commons.ErrorResponse[models.LogoutResponse]("session not found"), err
		}
		logger.Error("auth service logout failed", err, logger.Fields{
			"sessionId": sessionID,
		})
		return commons.ErrorResponse[models.LogoutResponse]("failed to logout", "Unable to logout right now"), err
	}

	logger.Info("auth service logout success", logger.Fields{
		"sessionId": sessionID,
	})

	return commons.SuccessResponse("logout successful", models.LogoutResponse{
		SessionID: sessionID,
		View:      string(domain.ViewLogin),
	}), nil
}

// Session resolves a live session together with a fresh copy of its user.
func (s *AuthService) Session(ctx context.Context, sessionID string) (*domain.Session, domain.User, error) {
	return resolveSession(ctx, s.sessionRepo, s.userRepo, sessionID)
}

func resolveSession(ctx context.Context, sessionRepo repo_interfaces.SessionRepository, userRepo repo_interfaces.UserRepository, sessionID string) (*domain.Session, domain.User, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.User{}, domain.ErrSessionNotFound
	}

	session, err := sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, domain.User{}, err
	}

	user, err := userRepo.Find(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.User{}, domain.ErrSessionNotFound
		}
		return nil, domain.User{}, fmt.Errorf("resolve session user: %w", err)
	}

	return session, user, nil
}
