package models

import (
	"errors"

	"github.com/api-sage/banco-digital/src/internal/domain"
)

type AccountResponse struct {
	Index   int    `json:"index"`
	Number  string `json:"number"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

type OverviewResponse struct {
	UserID          string            `json:"userId"`
	Name            string            `json:"name"`
	View            string            `json:"view"`
	SelectedAccount int               `json:"selectedAccount"`
	Processing      bool              `json:"processing"`
	Accounts        []AccountResponse `json:"accounts"`
}

type SelectAccountRequest struct {
	Index *int `json:"index"`
}

func (r SelectAccountRequest) Validate() error {
	if r.Index == nil {
		return errors.New("index is required")
	}
	if *r.Index < 0 {
		return errors.New("index must not be negative")
	}
	return nil
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

func MapOverview(user domain.User, session *domain.Session) OverviewResponse {
	accounts := make([]AccountResponse, 0, len(user.Accounts))
	for i, account := range user.Accounts {
		accounts = append(accounts, AccountResponse{
			Index:   i,
			Number:  account.Number,
			Type:    account.Type,
			Balance: account.Balance.StringFixed(2),
		})
	}

	return OverviewResponse{
		UserID:          user.ID,
		Name:            user.Name,
		View:            string(session.View()),
		SelectedAccount: session.SelectedAccount(),
		Processing:      session.Processing(),
		Accounts:        accounts,
	}
}
