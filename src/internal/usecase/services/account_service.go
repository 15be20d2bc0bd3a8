package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	userRepo    repo_interfaces.UserRepository
	sessionRepo repo_interfaces.SessionRepository
}

func NewAccountService(userRepo repo_interfaces.UserRepository, sessionRepo repo_interfaces.SessionRepository) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *AccountService) Overview(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error) {
	session, user, err := resolveSession(ctx, s.sessionRepo, s.userRepo, sessionID)
	if err != nil {
		return sessionFailure[models.OverviewResponse](err)
	}

	return commons.SuccessResponse("accounts fetched successfully", models.MapOverview(user, session)), nil
}

// SelectAccount keeps the selected index inside the user's account list.
func (s *AccountService) SelectAccount(ctx context.Context, sessionID string, req models.SelectAccountRequest) (commons.Response[models.OverviewResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.OverviewResponse]("validation failed", err.Error()), fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	session, user, err := resolveSession(ctx, s.sessionRepo, s.userRepo, sessionID)
	if err != nil {
		return sessionFailure[models.OverviewResponse](err)
	}

	index := *req.Index
	if !user.HasAccount(index) {
		err := fmt.Errorf("%w: account index %d out of range", domain.ErrValidation, index)
		return commons.ErrorResponse[models.OverviewResponse]("validation failed", "account index out of range"), err
	}
	// holding the processing flag keeps a transfer from starting mid-switch
	if !session.BeginProcessing() {
		return commons.ErrorResponse[models.OverviewResponse]("a transfer is being processed"), domain.ErrTransferInFlight
	}
	session.SelectAccount(index)
	session.EndProcessing()

	logger.Info("account service select account success", logger.Fields{
		"sessionId":     session.ID,
		"userId":        user.ID,
		"accountNumber": user.Accounts[index].Number,
	})

	return commons.SuccessResponse("account selected", models.MapOverview(user, session)), nil
}

func (s *AccountService) OpenTransfer(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error) {
	session, user, err := resolveSession(ctx, s.sessionRepo, s.userRepo, sessionID)
	if err != nil {
		return sessionFailure[models.OverviewResponse](err)
	}

	session.SetView(domain.ViewTransfer)
	return commons.SuccessResponse("transfer form opened", models.MapOverview(user, session)), nil
}

func (s *AccountService) Notifications(ctx context.Context, sessionID string) (commons.Response[models.NotificationsResponse], error) {
	session, _, err := resolveSession(ctx, s.sessionRepo, s.userRepo, sessionID)
	if err != nil {
		return sessionFailure[models.NotificationsResponse](err)
	}

	notifications := session.DrainNotifications()
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return commons.SuccessResponse("notifications fetched successfully", models.NotificationsResponse{
		Notifications: notifications,
	}), nil
}

func sessionFailure[T any](err error) (commons.Response[T], error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return commons.ErrorResponse[T]("session not found"), err
	}
	logger.Error("session lookup failed", err, nil)
	return commons.ErrorResponse[T]("failed to resolve session", "Unable to process request right now"), err
}
