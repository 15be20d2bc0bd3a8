package domain

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferType string

const (
	TransferTypeNational      TransferType = "NACIONAL"
	TransferTypeInternational TransferType = "INTERNACIONAL"
)

// TransferRequest is the raw form submitted by the client. Amount is kept as
// text so that parsing failures are reported by the pipeline.
type TransferRequest struct {
	DestinationAccount string
	SwiftCode          string
	Amount             string
	Concept            string
	PIN                string
	International      bool
}

func (r TransferRequest) Type() TransferType {
	if r.International {
		return TransferTypeInternational
	}
	return TransferTypeNational
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type OutcomeKind string

const (
	OutcomeCommitted         OutcomeKind = "COMMITTED"
	OutcomeRejected          OutcomeKind = "REJECTED"
	OutcomeFallbackCommitted OutcomeKind = "FALLBACK_COMMITTED"
)

// TransferOutcome is produced once per submission. Which fields are set
// depends on Kind.
type TransferOutcome struct {
	Kind OutcomeKind

	// Committed
	TransferID  string
	Fee         decimal.Decimal
	ProcessedAt string
	Status      string

	// Rejected
	FieldErrors []FieldError
	Message     string

	// FallbackCommitted
	Simulated bool

	AccountNumber string
	Amount        decimal.Decimal
	Debited       decimal.Decimal
	Balance       decimal.Decimal
	Notice        string
}

// TransferInstruction is what the gateway is asked to commit.
type TransferInstruction struct {
	BeneficiaryAccount string
	BeneficiaryName    string
	BeneficiaryBank    string
	Amount             decimal.Decimal
	Currency           string
	Type               TransferType
	SwiftCode          string
}

type GatewayResultKind int

const (
	GatewayCommitted GatewayResultKind = iota + 1
	GatewayRejected
)

type GatewayReceipt struct {
	TransferID  string
	ProcessedAt string
	Fee         decimal.Decimal
	Status      string
}

// GatewayResult is a decoded gateway response. Receipt is set for
// GatewayCommitted; FieldErrors and Message for GatewayRejected.
type GatewayResult struct {
	Kind        GatewayResultKind
	Receipt     GatewayReceipt
	FieldErrors []FieldError
	Message     string
}

const DefaultRejectionMessage = "No fue posible procesar la transferencia"

// RejectionText renders field errors one per line, falling back to the
// gateway message and then to DefaultRejectionMessage.
func (r GatewayResult) RejectionText() string {
	if len(r.FieldErrors) > 0 {
		lines := make([]string, 0, len(r.FieldErrors))
		for _, fe := range r.FieldErrors {
			lines = append(lines, fe.Field+": "+fe.Reason)
		}
		return strings.Join(lines, "\n")
	}
	if msg := strings.TrimSpace(r.Message); msg != "" {
		return msg
	}
	return DefaultRejectionMessage
}

// TransferGateway returns an error wrapping ErrTransportFailure when no
// response could be obtained.
type TransferGateway interface {
	SubmitTransfer(ctx context.Context, instruction TransferInstruction) (GatewayResult, error)
}

func (k GatewayResultKind) String() string {
	switch k {
	case GatewayCommitted:
		return "committed"
	case GatewayRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
