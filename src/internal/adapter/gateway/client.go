package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/api-sage/banco-digital/src/internal/logger"
	"github.com/api-sage/banco-digital/src/internal/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const transfersPath = "/transferencias"
const requestIDHeader = "X-Request-ID"
const maxResponseBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: tracing.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// SubmitTransfer posts the instruction. Any response body the gateway sends
// back is decoded into a GatewayResult; only the absence of a response is
// reported as domain.ErrTransportFailure.
func (c *Client) SubmitTransfer(ctx context.Context, instruction domain.TransferInstruction) (domain.GatewayResult, error) {
	requestID := uuid.NewString()

	ctx, span := tracing.Tracer.Start(ctx, "gateway.Client.SubmitTransfer")
	defer span.End()
	span.SetAttributes(
		attribute.String("request.id", requestID),
		attribute.String("transfer.type", string(instruction.Type)),
	)

	payload := newTransferPayload(instruction)
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.GatewayResult{}, tracing.RecordError(span, fmt.Errorf("encode transfer payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transfersPath, bytes.NewReader(body))
	if err != nil {
		return domain.GatewayResult{}, tracing.RecordError(span, fmt.Errorf("build gateway request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	logger.Info("gateway submit transfer request", logger.Fields{
		"requestId": requestID,
		"url":       req.URL.String(),
		"payload":   logger.SanitizePayload(payload),
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("gateway submit transfer transport failed", err, logger.Fields{
			"requestId":  requestID,
			"durationMs": time.Since(start).Milliseconds(),
		})
		return domain.GatewayResult{}, tracing.RecordError(span, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Error("gateway submit transfer read body failed", err, logger.Fields{
			"requestId": requestID,
			"status":    resp.StatusCode,
		})
		return domain.GatewayResult{}, tracing.RecordError(span, fmt.Errorf("%w: read response: %v", domain.ErrTransportFailure, err))
	}

	result := decodeResult(resp.StatusCode, raw)
	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.String("gateway.result", result.Kind.String()),
	)

	logger.Info("gateway submit transfer response", logger.Fields{
		"requestId":  requestID,
		"status":     resp.StatusCode,
		"kind":       result.Kind.String(),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return result, nil
}

func newTransferPayload(instruction domain.TransferInstruction) transferPayload {
	payload := transferPayload{
		CuentaBeneficiario: beneficiaryAccount{
			NumeroCuenta: instruction.BeneficiaryAccount,
			Titular:      instruction.BeneficiaryName,
			Banco:        instruction.BeneficiaryBank,
		},
		MontoTransferencia: transferAmount{
			Cantidad:   json.Number(instruction.Amount.StringFixed(2)),
			TipoMoneda: instruction.Currency,
		},
		TipoTransferencia: string(instruction.Type),
	}
	if instruction.Type == domain.TransferTypeInternational {
		payload.CodigoSwift = instruction.SwiftCode
	}
	return payload
}

func decodeResult(status int, raw []byte) domain.GatewayResult {
	var body transferResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		logger.Warn("gateway response body is not a transfer response", logger.Fields{
			"status": status,
			"error":  err.Error(),
		})
		return domain.GatewayResult{
			Kind:    domain.GatewayRejected,
			Message: fmt.Sprintf("%s (HTTP %d)", domain.DefaultRejectionMessage, status),
		}
	}

	success := status >= 200 && status < 300
	if success && body.Data != nil && len(body.Errores) == 0 {
		return domain.GatewayResult{
			Kind: domain.GatewayCommitted,
			Receipt: domain.GatewayReceipt{
				TransferID:  string(body.Data.TransferenciaID),
				ProcessedAt: string(body.Data.FechaProceso),
				Fee:         body.Data.Comision,
				Status:      body.Data.Estado,
			},
		}
	}

	result := domain.GatewayResult{
		Kind:    domain.GatewayRejected,
		Message: strings.TrimSpace(body.Mensaje),
	}
	for _, fe := range body.Errores {
		result.FieldErrors = append(result.FieldErrors, domain.FieldError{
			Field:  fe.Campo,
			Reason: fe.Descripcion,
		})
	}
	return result
}
