package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, input ports.LoginInput, requiredType string) (*ports.AuthResult, error)
	refreshFn func(ctx context.Context, refreshToken string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput, requiredType string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, input, requiredType)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, refreshToken)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, input ports.LoginInput, requiredType string) (*ports.AuthResult, error) {
			if input.Email != "admin@example.com" || input.Password != "ChangeMe123!" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if requiredType != "" {
				t.Fatalf("plain login must not constrain the type, got %q", requiredType)
			}
			if !input.RememberMe {
				t.Fatalf("rememberMe not propagated")
			}
			return &ports.AuthResult{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				User:         &domain.PublicUser{ID: "u1", Email: input.Email, FirstName: "Master", Role: domain.TypeAdmin},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login", `{"email":"admin@example.com","password":"ChangeMe123!","rememberMe":true}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "access-token" {
		t.Fatalf("missing accessToken: %v", resp)
	}
	if resp["refreshToken"] != "refresh-token" {
		t.Fatalf("missing refreshToken: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" {
		t.Fatalf("missing user projection: %v", resp)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_InvalidCredentialsPassedThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := postJSON(e, "/auth/login", `{"email":"admin@example.com","password":"wrongwrong"}`)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, ports.LoginInput, string) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	// Short password and malformed email both fail validation.
	c, _ := postJSON(e, "/auth/login", `{"email":"not-an-email","password":"short"}`)
	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_LoginWithType(t *testing.T) {
	e := newTestEcho()
	var gotType string
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput, requiredType string) (*ports.AuthResult, error) {
			gotType = requiredType
			return &ports.AuthResult{AccessToken: "t", User: &domain.PublicUser{ID: "u1"}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/login/dealer", `{"email":"dealer@example.com","password":"DealerPass123!"}`)
	c.SetParamNames("type")
	c.SetParamValues("dealer")
	if err := handler.LoginWithType(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotType != domain.TypeDealer {
		t.Fatalf("expected dealer constraint, got %q", gotType)
	}
}

func TestAuthHandler_LoginWithType_Unknown(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := postJSON(e, "/auth/login/pilot", `{"email":"x@example.com","password":"SomePass123!"}`)
	c.SetParamNames("type")
	c.SetParamValues("pilot")

	err := handler.LoginWithType(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestEcho()
	refresh := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1MSJ9.c2ln"
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (*ports.AuthResult, error) {
			if refreshToken != refresh {
				t.Fatalf("unexpected token: %q", refreshToken)
			}
			return &ports.AuthResult{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				User:         &domain.PublicUser{ID: "u1"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := postJSON(e, "/auth/refresh", `{"refreshToken":"`+refresh+`"}`)
	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "new-access" || resp["refreshToken"] != "new-refresh" {
		t.Fatalf("rotation response incomplete: %v", resp)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := postJSON(e, "/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
