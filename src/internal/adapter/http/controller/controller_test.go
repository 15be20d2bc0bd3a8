package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/banco-digital/src/internal/adapter/http/controller"
	"github.com/api-sage/banco-digital/src/internal/adapter/http/models"
	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/api-sage/banco-digital/src/internal/domain"
	"github.com/stretchr/testify/require"
)

type authServiceStub struct {
	loginFn  func(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	logoutFn func(ctx context.Context, sessionID string) (commons.Response[models.LogoutResponse], error)
}

func (s authServiceStub) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req)
	}
	return commons.Response[models.LoginResponse]{}, nil
}

func (s authServiceStub) Logout(ctx context.Context, sessionID string) (commons.Response[models.LogoutResponse], error) {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sessionID)
	}
	return commons.Response[models.LogoutResponse]{}, nil
}

func (s authServiceStub) Session(context.Context, string) (*domain.Session, domain.User, error) {
	return nil, domain.User{}, domain.ErrSessionNotFound
}

type accountServiceStub struct {
	overviewFn func(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error)
}

func (s accountServiceStub) Overview(ctx context.Context, sessionID string) (commons.Response[models.OverviewResponse], error) {
	if s.overviewFn != nil {
		return s.overviewFn(ctx, sessionID)
	}
	return commons.Response[models.OverviewResponse]{}, nil
}

func (s accountServiceStub) SelectAccount(context.Context, string, models.SelectAccountRequest) (commons.Response[models.OverviewResponse], error) {
	return commons.SuccessResponse("account selected", models.OverviewResponse{}), nil
}

func (s accountServiceStub) OpenTransfer(context.Context, string) (commons.Response[models.OverviewResponse], error) {
	return commons.SuccessResponse("transfer form opened", models.OverviewResponse{View: "transfer"}), nil
}

func (s accountServiceStub) Notifications(context.Context, string) (commons.Response[models.NotificationsResponse], error) {
	return commons.SuccessResponse("notifications fetched successfully", models.NotificationsResponse{Notifications: []domain.Notification{}}), nil
}

type transferServiceStub struct {
	transferFundsFn func(ctx context.Context, sessionID string, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error)
}

func (s transferServiceStub) SubmitTransfer(context.Context, *domain.Session, domain.TransferRequest) (domain.TransferOutcome, error) {
	return domain.TransferOutcome{}, nil
}

func (s transferServiceStub) TransferFunds(ctx context.Context, sessionID string, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error) {
	if s.transferFundsFn != nil {
		return s.transferFundsFn(ctx, sessionID, req)
	}
	return commons.Response[models.TransferFundsResponse]{}, nil
}

func serve(t *testing.T, register func(mux *http.ServeMux), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	register(mux)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestLoginReturnsSession(t *testing.T) {
	c := controller.NewAuthController(authServiceStub{
		loginFn: func(_ context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
			require.Equal(t, "12345678", req.UserID)
			require.Equal(t, "1234", req.Password)
			return commons.SuccessResponse("login successful", models.LoginResponse{SessionID: "s1"}), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"userId":"12345678","password":"1234"}`))
	rr := serve(t, func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body commons.Response[models.LoginResponse]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, "s1", body.Data.SessionID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := controller.NewAuthController(authServiceStub{
		loginFn: func(context.Context, models.LoginRequest) (commons.Response[models.LoginResponse], error) {
			return commons.ErrorResponse[models.LoginResponse]("Usuario o contraseña incorrectos"), domain.ErrUnauthorized
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"userId":"1","password":"x"}`))
	rr := serve(t, func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginRejectsMalformedBodyAndMethod(t *testing.T) {
	c := controller.NewAuthController(authServiceStub{})
	register := func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }

	rr := serve(t, register, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`)))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, register, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestAccountsReadsSessionHeader(t *testing.T) {
	var got string
	c := controller.NewAccountController(accountServiceStub{
		overviewFn: func(_ context.Context, sessionID string) (commons.Response[models.OverviewResponse], error) {
			got = sessionID
			if sessionID == "" {
				return commons.ErrorResponse[models.OverviewResponse]("session not found"), domain.ErrSessionNotFound
			}
			return commons.SuccessResponse("accounts fetched successfully", models.OverviewResponse{UserID: "12345678"}), nil
		},
	})
	register := func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("X-Session-ID", " s1 ")
	rr := serve(t, register, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "s1", got)

	rr = serve(t, register, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAccountRoutesRegistered(t *testing.T) {
	c := controller.NewAccountController(accountServiceStub{})
	register := func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }

	rr := serve(t, register, httptest.NewRequest(http.MethodPost, "/select-account", strings.NewReader(`{"index":1}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, register, httptest.NewRequest(http.MethodPost, "/open-transfer", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, register, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"notifications":[]`)
}

func TestTransferStatusMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"committed":          {nil, http.StatusOK},
		"missing fields":     {domain.NewTransferError(domain.ErrValidation, "Por favor completa todos los campos"), http.StatusBadRequest},
		"swift format":       {domain.NewTransferError(domain.ErrInvalidFormat, "swift"), http.StatusBadRequest},
		"amount":             {domain.NewTransferError(domain.ErrInvalidAmount, "monto"), http.StatusBadRequest},
		"pin":                {domain.NewTransferError(domain.ErrUnauthorized, "PIN incorrecto"), http.StatusUnauthorized},
		"no session":         {domain.ErrSessionNotFound, http.StatusUnauthorized},
		"insufficient funds": {domain.NewTransferError(domain.ErrInsufficientFunds, "Saldo insuficiente"), http.StatusUnprocessableEntity},
		"gateway rejected":   {domain.NewTransferError(domain.ErrGatewayRejected, "cuenta: no existe"), http.StatusUnprocessableEntity},
		"in flight":          {domain.NewTransferError(domain.ErrTransferInFlight, "en proceso"), http.StatusConflict},
		"unexpected":         {context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := controller.NewTransferController(transferServiceStub{
				transferFundsFn: func(_ context.Context, sessionID string, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error) {
					require.Equal(t, "s1", sessionID)
					require.Equal(t, "0009876543210", req.DestinationAccount)
					if tc.err != nil {
						return commons.FailureResponse[models.TransferFundsResponse]("failed to process transfer", tc.err), tc.err
					}
					return commons.SuccessResponse("ok", models.TransferFundsResponse{Outcome: "COMMITTED"}), nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/transfer-funds", strings.NewReader(`{"destinationAccount":"0009876543210","amount":"100","concept":"x","pin":"4567"}`))
			req.Header.Set("X-Session-ID", "s1")
			rr := serve(t, func(mux *http.ServeMux) { c.RegisterRoutes(mux, nil) }, req)

			require.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestRoutesUseAuthMiddleware(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	c := controller.NewTransferController(transferServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/transfer-funds", strings.NewReader(`{}`))
	rr := serve(t, func(mux *http.ServeMux) { c.RegisterRoutes(mux, deny) }, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
