package models

import (
	"github.com/api-sage/banco-digital/src/internal/domain"
)

// TransferFundsRequest mirrors the transfer form. Validation happens in the
// settlement pipeline so that its ordering is preserved.
type TransferFundsRequest struct {
	DestinationAccount string `json:"destinationAccount"`
	SwiftCode          string `json:"swiftCode,omitempty"`
	Amount             string `json:"amount"`
	Concept            string `json:"concept"`
	PIN                string `json:"pin"`
	International      bool   `json:"international"`
}

func (r TransferFundsRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		DestinationAccount: r.DestinationAccount,
		SwiftCode:          r.SwiftCode,
		Amount:             r.Amount,
		Concept:            r.Concept,
		PIN:                r.PIN,
		International:      r.International,
	}
}

type TransferFundsResponse struct {
	Outcome       string `json:"outcome"`
	TransferID    string `json:"transferId,omitempty"`
	Fee           string `json:"fee"`
	ProcessedAt   string `json:"processedAt,omitempty"`
	Status        string `json:"status,omitempty"`
	Simulated     bool   `json:"simulated"`
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
	TotalDebited  string `json:"totalDebited"`
	Balance       string `json:"balance"`
}

func MapTransferOutcome(outcome domain.TransferOutcome) TransferFundsResponse {
	return TransferFundsResponse{
		Outcome:       string(outcome.Kind),
		TransferID:    outcome.TransferID,
		Fee:           outcome.Fee.StringFixed(2),
		ProcessedAt:   outcome.ProcessedAt,
		Status:        outcome.Status,
		Simulated:     outcome.Simulated,
		AccountNumber: outcome.AccountNumber,
		Amount:        outcome.Amount.StringFixed(2),
		TotalDebited:  outcome.Debited.StringFixed(2),
		Balance:       outcome.Balance.StringFixed(2),
	}
}

func FieldErrorLines(fieldErrors []domain.FieldError) []string {
	if len(fieldErrors) == 0 {
		return nil
	}
	lines := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		lines = append(lines, fe.Field+": "+fe.Reason)
	}
	return lines
}
