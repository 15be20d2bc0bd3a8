package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/delay"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/api-sage/banco-digital/src/internal/security"
	"github.com/api-sage/banco-digital/src/internal/tracing"
	"github.com/api-sage/banco-digital/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const defaultTransferCurrency = "COP"

// Amount bounds, checked before any rounding or comparison since rescaling a
// decimal allocates one digit per unit of exponent.
const (
	maxAmountIntegerDigits = 15
	maxAmountScale         = 18
)

// The gateway contract has no beneficiary name or bank on the form, so fixed
// placeholders are sent.
const placeholderBeneficiaryName = "Beneficiario"
const placeholderBeneficiaryBank = "Banco Destino"

const (
	missingFieldsMessage    = "Por favor completa todos los campos"
	swiftFormatMessage      = "El código SWIFT debe tener 8 u 11 caracteres"
	invalidPinMessage       = "PIN incorrecto"
	invalidAmountMessage    = "El monto debe ser mayor a 0"
	amountPrecisionMessage  = "El monto admite como máximo dos decimales"
	amountTooLargeMessage   = "El monto excede el máximo permitido"
	invalidAccountMessage   = "La cuenta seleccionada no es válida"
	insufficientFundsNotice = "Saldo insuficiente"
	inFlightMessage         = "Ya hay una transferencia en proceso"
	processingMessage       = "Procesando transferencia... (servidor no disponible, usando modo demo)"
)

var _ service_interfaces.TransferService = (*TransferService)(nil)

type TransferOptions struct {
	Currency    string
	SettleDelay time.Duration
	// CreditLocalBeneficiary credits the destination account when it is
	// held by a user of the directory.
	CreditLocalBeneficiary bool
}

type TransferService struct {
	userRepo    repo_interfaces.UserRepository
	sessionRepo repo_interfaces.SessionRepository
	gateway     domain.TransferGateway
	currency    string
	settleDelay time.Duration
	creditLocal bool

	// serializes read-modify-commit of balances
	commitMu sync.Mutex
	// user id -> struct{}, one submission per user across all sessions
	usersInFlight sync.Map
}

func NewTransferService(
	userRepo repo_interfaces.UserRepository,
	sessionRepo repo_interfaces.SessionRepository,
	gateway domain.TransferGateway,
	opts TransferOptions,
) *TransferService {
	currency := strings.ToUpper(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = defaultTransferCurrency
	}

	return &TransferService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		gateway:     gateway,
		currency:    currency,
		settleDelay: opts.SettleDelay,
		creditLocal: opts.CreditLocalBeneficiary,
	}
}

func (s *TransferService) TransferFunds(ctx context.Context, sessionID string, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error) {
	logger.Info("transfer service transfer funds request", logger.Fields{
		"sessionId": sessionID,
		"payload":   logger.SanitizePayload(req),
	})

	session, err := s.sessionRepo.Get(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return sessionFailure[models.TransferFundsResponse](err)
	}

	outcome, err := s.SubmitTransfer(ctx, session, req.ToDomain())
	if err != nil {
		return commons.FailureResponse[models.TransferFundsResponse]("failed to process transfer", err, models.FieldErrorLines(outcome.FieldErrors)...), err
	}

	return commons.SuccessResponse(outcome.Notice, models.MapTransferOutcome(outcome)), nil
}

// SubmitTransfer runs the settlement pipeline for one submission. Failures
// are returned as *domain.TransferError and leave balances untouched. A
// transport failure is not an error: it ends in a simulated local commit.
func (s *TransferService) SubmitTransfer(ctx context.Context, session *domain.Session, req domain.TransferRequest) (outcome domain.TransferOutcome, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "transfer.TransferService.SubmitTransfer")
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
		} else {
			span.SetAttributes(
				attribute.String("transfer.outcome", string(outcome.Kind)),
				attribute.Bool("transfer.simulated", outcome.Simulated),
			)
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.String("transfer.type", string(req.Type())),
	)

	if !session.BeginProcessing() {
		logger.Info("transfer service submission rejected while processing", logger.Fields{
			"sessionId": session.ID,
		})
		return domain.TransferOutcome{}, domain.NewTransferError(domain.ErrTransferInFlight, inFlightMessage)
	}
	defer session.EndProcessing()

	if _, busy := s.usersInFlight.LoadOrStore(session.UserID, struct{}{}); busy {
		logger.Info("transfer service submission rejected, user has a transfer in another session", logger.Fields{
			"sessionId": session.ID,
			"userId":    session.UserID,
		})
		return domain.TransferOutcome{}, domain.NewTransferError(domain.ErrTransferInFlight, inFlightMessage)
	}
	defer s.usersInFlight.Delete(session.UserID)

	user, err := s.userRepo.Find(ctx, session.UserID)
	if err != nil {
		logger.Error("transfer service load user failed", err, logger.Fields{
			"sessionId": session.ID,
			"userId":    session.UserID,
		})
		return domain.TransferOutcome{}, fmt.Errorf("load session user: %w", err)
	}

	accountIndex := session.SelectedAccount()
	amount, err := s.validate(user, accountIndex, req)
	if err != nil {
		var transferErr *domain.TransferError
		if errors.As(err, &transferErr) {
			session.Notify(domain.Notification{Kind: domain.NotificationError, Message: transferErr.Message})
		}
		logger.Info("transfer service validation failed", logger.Fields{
			"sessionId": session.ID,
			"userId":    user.ID,
			"error":     err.Error(),
		})
		return domain.TransferOutcome{}, err
	}

	instruction := s.newInstruction(req, amount)

	// Once the gateway has been called the outcome must settle even if the
	// caller goes away.
	return s.settle(context.WithoutCancel(ctx), session, user, accountIndex, instruction)
}

func (s *TransferService) validate(user domain.User, accountIndex int, req domain.TransferRequest) (decimal.Decimal, error) {
	swift := normalizeSwift(req.SwiftCode)

	if strings.TrimSpace(req.DestinationAccount) == "" ||
		strings.TrimSpace(req.Amount) == "" ||
		strings.TrimSpace(req.Concept) == "" ||
		req.PIN == "" ||
		(req.International && swift == "") {
		return decimal.Zero, domain.NewTransferError(domain.ErrValidation, missingFieldsMessage)
	}

	if req.International {
		if n := utf8.RuneCountInString(swift); n != 8 && n != 11 {
			return decimal.Zero, domain.NewTransferError(domain.ErrInvalidFormat, swiftFormatMessage)
		}
	}

	ok, err := security.Matches(user.PinHash, req.PIN)
	if err != nil {
		logger.Error("transfer service pin compare failed", err, logger.Fields{
			"userId": user.ID,
		})
	}
	if !ok {
		return decimal.Zero, domain.NewTransferError(domain.ErrUnauthorized, invalidPinMessage)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, domain.NewTransferError(domain.ErrInvalidAmount, amountPrecisionMessage)
	}

	if !user.HasAccount(accountIndex) {
		return decimal.Zero, domain.NewTransferError(domain.ErrValidation, invalidAccountMessage)
	}
	if amount.GreaterThan(user.Accounts[accountIndex].Balance) {
		return decimal.Zero, domain.NewTransferError(domain.ErrInsufficientFunds, insufficientFundsNotice)
	}

	return amount, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.Sign() <= 0 {
		return decimal.Zero, domain.NewTransferError(domain.ErrInvalidAmount, invalidAmountMessage)
	}

	exp := int(amount.Exponent())
	if exp < -maxAmountScale {
		return decimal.Zero, domain.NewTransferError(domain.ErrInvalidAmount, amountPrecisionMessage)
	}
	if exp > maxAmountIntegerDigits || amount.NumDigits()+exp > maxAmountIntegerDigits {
		return decimal.Zero, domain.NewTransferError(domain.ErrInvalidAmount, amountTooLargeMessage)
	}

	return amount, nil
}

func (s *TransferService) newInstruction(req domain.TransferRequest, amount decimal.Decimal) domain.TransferInstruction {
	instruction := domain.TransferInstruction{
		BeneficiaryAccount: strings.TrimSpace(req.DestinationAccount),
		BeneficiaryName:    placeholderBeneficiaryName,
		BeneficiaryBank:    placeholderBeneficiaryBank,
		Amount:             amount,
		Currency:           s.currency,
		Type:               req.Type(),
	}
	if req.International {
		instruction.SwiftCode = normalizeSwift(req.SwiftCode)
	}
	return instruction
}

// settle joins the gateway call with the settle timer. A gateway response
// always wins and stops the timer. The local fallback runs only when the
// gateway produced no response, and not before the settle delay has elapsed
// since submission.
func (s *TransferService) settle(
	ctx context.Context,
	session *domain.Session,
	user domain.User,
	accountIndex int,
	instruction domain.TransferInstruction,
) (domain.TransferOutcome, error) {
	var (
		result    domain.GatewayResult
		remoteErr error
	)

	timerCtx, stopTimer := context.WithCancel(ctx)
	defer stopTimer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, remoteErr = s.gateway.SubmitTransfer(gctx, instruction)
		if remoteErr == nil {
			stopTimer()
			return nil
		}

		logger.Warn("transfer service gateway unavailable, settling locally", logger.Fields{
			"sessionId": session.ID,
			"error":     remoteErr.Error(),
		})
		session.Notify(domain.Notification{Kind: domain.NotificationInfo, Message: processingMessage})
		return nil
	})
	g.Go(func() error {
		_ = delay.For(timerCtx, s.settleDelay)
		return nil
	})
	_ = g.Wait()

	if remoteErr != nil {
		return s.commitFallback(ctx, session, user, accountIndex, instruction)
	}

	switch result.Kind {
	case domain.GatewayCommitted:
		return s.commitRemote(ctx, session, user, accountIndex, instruction, result.Receipt)
	case domain.GatewayRejected:
		return s.reject(session, user, accountIndex, instruction, result)
	default:
		logger.Error("transfer service unknown gateway result", nil, logger.Fields{
			"sessionId": session.ID,
			"kind":      result.Kind.String(),
		})
		return s.reject(session, user, accountIndex, instruction, domain.GatewayResult{Kind: domain.GatewayRejected})
	}
}

func (s *TransferService) commitRemote(
	ctx context.Context,
	session *domain.Session,
	user domain.User,
	accountIndex int,
	instruction domain.TransferInstruction,
	receipt domain.GatewayReceipt,
) (domain.TransferOutcome, error) {
	fee := receipt.Fee
	if fee.IsNegative() {
		logger.Warn("transfer service gateway returned negative fee, ignoring it", logger.Fields{
			"transferId": receipt.TransferID,
			"fee":        fee.String(),
		})
		fee = decimal.Zero
	}
	debit := instruction.Amount.Add(fee)

	outcome := domain.TransferOutcome{
		Kind:          domain.OutcomeCommitted,
		TransferID:    receipt.TransferID,
		Fee:           fee,
		ProcessedAt:   receipt.ProcessedAt,
		Status:        receipt.Status,
		AccountNumber: user.Accounts[accountIndex].Number,
		Amount:        instruction.Amount,
		Debited:       debit,
	}

	updated, err := s.applySettlement(ctx, user.ID, accountIndex, instruction.Amount, fee, instruction)
	if err != nil {
		logger.Error("transfer service commit after gateway success failed", err, logger.Fields{
			"sessionId":  session.ID,
			"transferId": receipt.TransferID,
		})
		notice := fmt.Sprintf("La transferencia %s fue aceptada pero el saldo no pudo actualizarse", receipt.TransferID)
		session.Notify(domain.Notification{Kind: domain.NotificationError, Message: notice})
		return outcome, fmt.Errorf("commit transfer %s: %w", receipt.TransferID, err)
	}

	outcome.Balance = updated.Accounts[accountIndex].Balance
	outcome.Notice = fmt.Sprintf("Transferencia exitosa. ID: %s. Comisión: $%s", receipt.TransferID, fee.StringFixed(2))
	if outcome.Balance.IsNegative() {
		logger.Warn("transfer service fee left account overdrawn", logger.Fields{
			"transferId":    receipt.TransferID,
			"accountNumber": outcome.AccountNumber,
			"fee":           fee.StringFixed(2),
			"balance":       outcome.Balance.StringFixed(2),
		})
	}

	session.Notify(domain.Notification{Kind: domain.NotificationSuccess, Message: outcome.Notice})
	session.SetView(domain.ViewOverview)

	logger.Info("transfer service transfer committed", logger.Fields{
		"sessionId":     session.ID,
		"userId":        user.ID,
		"transferId":    receipt.TransferID,
		"accountNumber": outcome.AccountNumber,
		"amount":        instruction.Amount.StringFixed(2),
		"fee":           fee.StringFixed(2),
		"type":          string(instruction.Type),
	})

	return outcome, nil
}

// commitFallback settles locally without fee or gateway id. The result is
// tagged Simulated; it diverges from what the gateway would have charged.
func (s *TransferService) commitFallback(
	ctx context.Context,
	session *domain.Session,
	user domain.User,
	accountIndex int,
	instruction domain.TransferInstruction,
) (domain.TransferOutcome, error) {
	outcome := domain.TransferOutcome{
		Kind:          domain.OutcomeFallbackCommitted,
		Simulated:     true,
		Fee:           decimal.Zero,
		AccountNumber: user.Accounts[accountIndex].Number,
		Amount:        instruction.Amount,
		Debited:       instruction.Amount,
	}

	updated, err := s.applySettlement(ctx, user.ID, accountIndex, instruction.Amount, decimal.Zero, instruction)
	if err != nil {
		logger.Error("transfer service fallback commit failed", err, logger.Fields{
			"sessionId": session.ID,
			"userId":    user.ID,
		})
		if errors.Is(err, domain.ErrInsufficientFunds) {
			session.Notify(domain.Notification{Kind: domain.NotificationError, Message: insufficientFundsNotice})
			return domain.TransferOutcome{}, domain.NewTransferError(domain.ErrInsufficientFunds, insufficientFundsNotice)
		}
		return outcome, fmt.Errorf("fallback commit: %w", err)
	}

	outcome.Balance = updated.Accounts[accountIndex].Balance
	outcome.Notice = fmt.Sprintf("Transferencia exitosa por $%s (modo demo: simulada sin conexión con el servidor)", instruction.Amount.StringFixed(2))

	session.Notify(domain.Notification{Kind: domain.NotificationSuccess, Message: outcome.Notice})
	session.SetView(domain.ViewOverview)

	logger.Warn("transfer service fallback commit applied without fee or gateway id", logger.Fields{
		"sessionId":     session.ID,
		"userId":        user.ID,
		"accountNumber": outcome.AccountNumber,
		"amount":        instruction.Amount.StringFixed(2),
		"type":          string(instruction.Type),
	})

	return outcome, nil
}

func (s *TransferService) reject(
	session *domain.Session,
	user domain.User,
	accountIndex int,
	instruction domain.TransferInstruction,
	result domain.GatewayResult,
) (domain.TransferOutcome, error) {
	notice := result.RejectionText()
	session.Notify(domain.Notification{Kind: domain.NotificationError, Message: notice})

	logger.Info("transfer service gateway rejected transfer", logger.Fields{
		"sessionId":   session.ID,
		"userId":      user.ID,
		"fieldErrors": result.FieldErrors,
		"message":     result.Message,
	})

	outcome := domain.TransferOutcome{
		Kind:          domain.OutcomeRejected,
		FieldErrors:   result.FieldErrors,
		Message:       result.Message,
		AccountNumber: user.Accounts[accountIndex].Number,
		Amount:        instruction.Amount,
		Balance:       user.Accounts[accountIndex].Balance,
		Notice:        notice,
	}
	return outcome, domain.NewTransferError(domain.ErrGatewayRejected, notice)
}

// applySettlement debits amount plus fee from the selected account on a fresh
// copy of the user and, when enabled, credits a destination account held in
// the directory. The amount is checked against the current balance again;
// only the fee may overdraw the account.
func (s *TransferService) applySettlement(
	ctx context.Context,
	userID string,
	accountIndex int,
	amount decimal.Decimal,
	fee decimal.Decimal,
	instruction domain.TransferInstruction,
) (domain.User, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	user, err := s.userRepo.Find(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("reload user: %w", err)
	}
	if !user.HasAccount(accountIndex) {
		return domain.User{}, fmt.Errorf("%w: account index %d out of range", domain.ErrValidation, accountIndex)
	}

	balance := user.Accounts[accountIndex].Balance
	if amount.GreaterThan(balance) {
		return domain.User{}, fmt.Errorf("%w: balance %s below amount %s", domain.ErrInsufficientFunds, balance.StringFixed(2), amount.StringFixed(2))
	}
	user.Accounts[accountIndex].Balance = balance.Sub(amount).Sub(fee)

	var beneficiary *domain.User
	if s.creditLocal {
		beneficiary = s.creditBeneficiary(ctx, &user, instruction)
	}

	committed, err := s.userRepo.Commit(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("commit user: %w", err)
	}

	if beneficiary != nil {
		if _, err := s.userRepo.Commit(ctx, *beneficiary); err != nil {
			logger.Error("transfer service credit local beneficiary failed", err, logger.Fields{
				"accountNumber": instruction.BeneficiaryAccount,
			})
		}
	}

	return committed, nil
}

// creditBeneficiary credits the destination in place when the payer owns it,
// otherwise returns the other directory user with the credit applied.
func (s *TransferService) creditBeneficiary(ctx context.Context, payer *domain.User, instruction domain.TransferInstruction) *domain.User {
	if idx := payer.AccountIndex(instruction.BeneficiaryAccount); idx >= 0 {
		payer.Accounts[idx].Balance = payer.Accounts[idx].Balance.Add(instruction.Amount)
		return nil
	}

	other, err := s.userRepo.FindByAccountNumber(ctx, instruction.BeneficiaryAccount)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("transfer service beneficiary lookup failed", err, logger.Fields{
				"accountNumber": instruction.BeneficiaryAccount,
			})
		}
		return nil
	}

	idx := other.AccountIndex(instruction.BeneficiaryAccount)
	other.Accounts[idx].Balance = other.Accounts[idx].Balance.Add(instruction.Amount)

	logger.Info("transfer service credited local beneficiary", logger.Fields{
		"userId":        other.ID,
		"accountNumber": instruction.BeneficiaryAccount,
		"amount":        instruction.Amount.StringFixed(2),
	})
	return &other
}

func normalizeSwift(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
