package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/singerjob/singerjob/internal/auth"
	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/http/handlers"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementations of the handlers.AccountService and
// handlers.TokenIssuer interfaces

type fakeAccounts struct {
	registerFn func(ctx context.Context, req user.RegisterRequest) (user.User, error)
	loginFn    func(ctx context.Context, email, password string) (user.User, error)
	logoutFn   func(ctx context.Context) error
}

func (f *fakeAccounts) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}

	return user.User{}, nil
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (user.User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}

	return user.User{}, nil
}

func (f *fakeAccounts) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}

	return nil
}

type fakeTokens struct {
	accessFn  func(u user.User) (string, error)
	refreshFn func(u user.User) (string, error)
	verifyFn  func(token string) (*auth.Claims, error)
}

func (f *fakeTokens) GenerateAccessToken(u user.User) (string, error) {
	if f.accessFn != nil {
		return f.accessFn(u)
	}

	return "access-token", nil
}

func (f *fakeTokens) GenerateRefreshToken(u user.User) (string, error) {
	if f.refreshFn != nil {
		return f.refreshFn(u)
	}

	return "refresh-token", nil
}

func (f *fakeTokens) VerifyRefreshToken(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}

	return &auth.Claims{UserID: "u1"}, nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		accountsSetUp  func(*fakeAccounts)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"name": "Ana Ribeiro",
				"email": "ana@example.com",
				"password": "senha123",
				"userType": "artist",
				"artType": "Música"
			}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.registerFn = func(ctx context.Context, req user.RegisterRequest) (user.User, error) {
					return user.User{ID: "u1", Name: req.Name, Email: req.Email, UserType: req.UserType}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "malformed_json",
			body:           `{"name": `,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// binding rejects before the service is reached
			name:           "missing_required_fields",
			body:           `{"name": "Ana"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "service_validation_error",
			body: `{
				"name": "Ana Ribeiro",
				"email": "ana@example.com",
				"password": "senha123",
				"userType": "artist"
			}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.registerFn = func(ctx context.Context, req user.RegisterRequest) (user.User, error) {
					return user.User{}, &auth.ValidationError{Fields: map[string]string{
						"email": "email is already registered",
					}}
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{
				"name": "Ana Ribeiro",
				"email": "ana@example.com",
				"password": "senha123",
				"userType": "artist"
			}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.registerFn = func(ctx context.Context, req user.RegisterRequest) (user.User, error) {
					return user.User{}, errors.New("store down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}

			if tt.accountsSetUp != nil {
				tt.accountsSetUp(accounts)
			}

			h := handlers.NewAuthHandler(accounts, &fakeTokens{})

			r := setupRouter(http.MethodPost, "/auth/register", h.Register)

			w := postJSON(r, "/auth/register", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		accountsSetUp  func(*fakeAccounts)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email": "ana@example.com", "password": "senha123"}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.loginFn = func(ctx context.Context, email, password string) (user.User, error) {
					return user.User{ID: "u1", Email: email, UserType: user.TypeArtist}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "bad_credentials",
			body: `{"email": "ana@example.com", "password": "wrong"}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.loginFn = func(ctx context.Context, email, password string) (user.User, error) {
					return user.User{}, auth.ErrInvalidCredentials
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing_password",
			body:           `{"email": "ana@example.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "store_error",
			body: `{"email": "ana@example.com", "password": "senha123"}`,
			accountsSetUp: func(f *fakeAccounts) {
				f.loginFn = func(ctx context.Context, email, password string) (user.User, error) {
					return user.User{}, errors.New("store down")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}

			if tt.accountsSetUp != nil {
				tt.accountsSetUp(accounts)
			}

			h := handlers.NewAuthHandler(accounts, &fakeTokens{})

			r := setupRouter(http.MethodPost, "/auth/login", h.Login)

			w := postJSON(r, "/auth/login", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	accounts := &fakeAccounts{
		loginFn: func(ctx context.Context, email, password string) (user.User, error) {
			return user.User{ID: "u1", Email: email, UserType: user.TypeArtist}, nil
		},
	}

	h := handlers.NewAuthHandler(accounts, &fakeTokens{})

	r := setupRouter(http.MethodPost, "/auth/login", h.Login)

	w := postJSON(r, "/auth/login", `{"email": "ana@example.com", "password": "senha123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token        string    `json:"token"`
		RefreshToken string    `json:"refreshToken"`
		User         user.User `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Token != "access-token" || resp.RefreshToken != "refresh-token" {
		t.Fatalf("token pair missing: %+v", resp)
	}

	if resp.User.ID != "u1" {
		t.Fatalf("user missing from response: %+v", resp)
	}
}

func TestRefreshHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		tokensSetUp    func(*fakeTokens)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"refreshToken": "good"}`,
			tokensSetUp: func(f *fakeTokens) {
				f.verifyFn = func(token string) (*auth.Claims, error) {
					return &auth.Claims{UserID: "u1", Email: "ana@example.com", UserType: user.TypeArtist}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "invalid_token",
			body: `{"refreshToken": "bad"}`,
			tokensSetUp: func(f *fakeTokens) {
				f.verifyFn = func(token string) (*auth.Claims, error) {
					return nil, errors.New("token is expired")
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing_token",
			body:           `{}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{}

			if tt.tokensSetUp != nil {
				tt.tokensSetUp(tokens)
			}

			h := handlers.NewAuthHandler(&fakeAccounts{}, tokens)

			r := setupRouter(http.MethodPost, "/auth/refresh", h.Refresh)

			w := postJSON(r, "/auth/refresh", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestLogoutHandlerAlwaysNoContent(t *testing.T) {
	tests := []struct {
		name     string
		logoutFn func(ctx context.Context) error
	}{
		{name: "success", logoutFn: nil},
		{
			name:     "store_error_still_204",
			logoutFn: func(ctx context.Context) error { return errors.New("store down") },
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{logoutFn: tt.logoutFn}

			h := handlers.NewAuthHandler(accounts, &fakeTokens{})

			r := setupRouter(http.MethodPost, "/auth/logout", h.Logout)

			w := postJSON(r, "/auth/logout", "")

			if w.Code != http.StatusNoContent {
				t.Fatalf("got status %d, want 204", w.Code)
			}
		})
	}
}
