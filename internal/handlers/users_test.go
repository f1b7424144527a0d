package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/giglegig/portfolio-api/internal/models"
	"github.com/giglegig/portfolio-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRequestCode_Success(t *testing.T) {
	var gotEmail string
	authService := &MockAuthService{
		RequestCodeFunc: func(ctx context.Context, email string) error {
			gotEmail = email
			return nil
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/request-code", RequestCodeRequest{Email: "admin@example.com"})
	w := httptest.NewRecorder()
	handler.RequestCode(w, req)

	var resp RequestCodeResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Verification code sent", resp.Message)
	assert.Equal(t, "admin@example.com", resp.Email)
	assert.Equal(t, "admin@example.com", gotEmail)
}

func TestRequestCode_CaseVariantEmail_Refused(t *testing.T) {
	var gotEmail string
	authService := &MockAuthService{
		RequestCodeFunc: func(ctx context.Context, email string) error {
			gotEmail = email
			return models.ErrUnauthorized
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/request-code", RequestCodeRequest{Email: "ADMIN@EXAMPLE.COM"})
	w := httptest.NewRecorder()
	handler.RequestCode(w, req)

	// The allow-list match is exact, so the submitted address must reach
	// the service byte for byte
	assert.Equal(t, "ADMIN@EXAMPLE.COM", gotEmail)
	AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestVerifyCode_CaseVariantEmail_Refused(t *testing.T) {
	var gotEmail string
	authService := &MockAuthService{
		VerifyCodeFunc: func(ctx context.Context, email, code string) (*services.AuthResponse, error) {
			gotEmail = email
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/verify-code", VerifyCodeRequest{
		Email: "Admin@Example.com",
		Code:  "123456",
	})
	w := httptest.NewRecorder()
	handler.VerifyCode(w, req)

	assert.Equal(t, "Admin@Example.com", gotEmail)
	AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestRequestCode_NonAdminEmail(t *testing.T) {
	authService := &MockAuthService{
		RequestCodeFunc: func(ctx context.Context, email string) error {
			return models.ErrUnauthorized
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/request-code", RequestCodeRequest{Email: "stranger@example.com"})
	w := httptest.NewRecorder()
	handler.RequestCode(w, req)

	AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestRequestCode_InvalidEmail(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/request-code", RequestCodeRequest{Email: "not-an-email"})
	w := httptest.NewRecorder()
	handler.RequestCode(w, req)

	AssertErrorResponse(t, w, 400, "bad_request")
}

func TestRequestCode_EmailDeliveryFailure(t *testing.T) {
	authService := &MockAuthService{
		RequestCodeFunc: func(ctx context.Context, email string) error {
			return models.ErrEmailDelivery
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/request-code", RequestCodeRequest{Email: "admin@example.com"})
	w := httptest.NewRecorder()
	handler.RequestCode(w, req)

	AssertErrorResponse(t, w, 500, "email_delivery_failed")
}

func TestVerifyCode_Success(t *testing.T) {
	authService := &MockAuthService{
		VerifyCodeFunc: func(ctx context.Context, email, code string) (*services.AuthResponse, error) {
			assert.Equal(t, "admin@example.com", email)
			assert.Equal(t, "123456", code)
			return &services.AuthResponse{
				ID:      "user-1",
				Email:   email,
				IsAdmin: true,
				Token:   "token-abc",
			}, nil
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/verify-code", VerifyCodeRequest{
		Email: "admin@example.com",
		Code:  "123456",
	})
	w := httptest.NewRecorder()
	handler.VerifyCode(w, req)

	var resp services.AuthResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "token-abc", resp.Token)
	assert.True(t, resp.IsAdmin)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	authService := &MockAuthService{
		VerifyCodeFunc: func(ctx context.Context, email, code string) (*services.AuthResponse, error) {
			return nil, models.ErrInvalidOrExpiredCode
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/verify-code", VerifyCodeRequest{
		Email: "admin@example.com",
		Code:  "999999",
	})
	w := httptest.NewRecorder()
	handler.VerifyCode(w, req)

	AssertErrorResponse(t, w, 401, "invalid_code")
}

func TestVerifyCode_MalformedCode(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/verify-code", VerifyCodeRequest{
		Email: "admin@example.com",
		Code:  "12ab56",
	})
	w := httptest.NewRecorder()
	handler.VerifyCode(w, req)

	AssertErrorResponse(t, w, 400, "bad_request")
}

func TestLogin_Success(t *testing.T) {
	authService := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{ID: "user-1", Email: email, Token: "token-abc"}, nil
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/login", LoginRequest{
		Email:    "writer@example.com",
		Password: "Str0ng!Passw0rd",
	})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	var resp services.AuthResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "token-abc", resp.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users/login", LoginRequest{
		Email:    "writer@example.com",
		Password: "wrong",
	})
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestRegister_Success(t *testing.T) {
	authService := &MockAuthService{
		RegisterFunc: func(ctx context.Context, username, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{ID: "user-2", Username: username, Email: email, Token: "token-new"}, nil
		},
	}
	handler := NewUserHandler(authService, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users", RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "Str0ng!Passw0rd",
	})
	w := httptest.NewRecorder()
	handler.Register(w, req)

	var resp services.AuthResponse
	AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "writer", resp.Username)
}

func TestRegister_Conflict(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "POST", "/users", RegisterRequest{
		Username: "writer",
		Email:    "writer@example.com",
		Password: "Str0ng!Passw0rd",
	})
	w := httptest.NewRecorder()
	handler.Register(w, req)

	AssertErrorResponse(t, w, 409, "conflict")
}

func TestGetAccount_Success(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "GET", "/users/profile", nil)
	req = WithAuthContext(req, &models.User{ID: "user-1", Username: "writer", Email: "writer@example.com"})
	w := httptest.NewRecorder()
	handler.GetAccount(w, req)

	var resp services.UserResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "writer", resp.Username)
}

func TestGetAccount_NoAuthContext(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "GET", "/users/profile", nil)
	w := httptest.NewRecorder()
	handler.GetAccount(w, req)

	AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestUpdateAccount_Success(t *testing.T) {
	userService := &MockUserService{
		UpdateAccountFunc: func(ctx context.Context, id, username, password string) (*models.User, error) {
			assert.Equal(t, "user-1", id)
			assert.Equal(t, "scribe", username)
			return &models.User{ID: id, Username: username, Email: "writer@example.com"}, nil
		},
	}
	handler := NewUserHandler(&MockAuthService{}, userService)

	req := NewTestRequest(t, "PUT", "/users/profile", UpdateAccountRequest{Username: "scribe"})
	req = WithAuthContext(req, &models.User{ID: "user-1", Username: "writer"})
	w := httptest.NewRecorder()
	handler.UpdateAccount(w, req)

	var resp services.UserResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "scribe", resp.Username)
}

func TestUpdateAccount_ShortPassword(t *testing.T) {
	handler := NewUserHandler(&MockAuthService{}, &MockUserService{})

	req := NewTestRequest(t, "PUT", "/users/profile", UpdateAccountRequest{Password: "short"})
	req = WithAuthContext(req, &models.User{ID: "user-1"})
	w := httptest.NewRecorder()
	handler.UpdateAccount(w, req)

	AssertErrorResponse(t, w, 400, "bad_request")
}
