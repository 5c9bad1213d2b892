package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/identity"
	"github.com/geocoder89/enrollhub/internal/security"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

// Fake repository implementation of handlers.AccountStore
type fakeAccounts struct {
	createFn      func(ctx context.Context, a account.Account) (account.Account, error)
	getByEmailFn  func(ctx context.Context, email string) (account.Account, error)
	listByEmailFn func(ctx context.Context, email string) ([]account.Account, error)
	getProfileFn  func(ctx context.Context, id string) (account.Account, error)
	updateFn      func(ctx context.Context, id string, changes account.Changes) (account.Account, error)
}

func (f *fakeAccounts) Create(ctx context.Context, a account.Account) (account.Account, error) {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	a.ID = "generated-id"
	return a, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return account.Account{}, account.ErrNotFound
}

func (f *fakeAccounts) ListByEmail(ctx context.Context, email string) ([]account.Account, error) {
	if f.listByEmailFn != nil {
		return f.listByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeAccounts) GetProfile(ctx context.Context, id string) (account.Account, error) {
	if f.getProfileFn != nil {
		return f.getProfileFn(ctx, id)
	}
	return account.Account{}, account.ErrNotFound
}

func (f *fakeAccounts) Update(ctx context.Context, id string, changes account.Changes) (account.Account, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, changes)
	}
	return account.Account{}, account.ErrNotFound
}

// fakeHasher prefixes instead of hashing so tests stay fast and predictable.
type fakeHasher struct {
	hashErr error
}

func (h fakeHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return security.ErrPasswordMismatch
	}
	return nil
}

type fakeTokens struct {
	err error
}

func (f fakeTokens) GenerateAccessToken(userID, email, role string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID + "-" + role, nil
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code      string          `json:"code"`
		RequestID string          `json:"requestId"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
}

// small helper function which returns the gin engine to mount one handler per test,
// optionally behind a stand-in for the auth middleware
func setupRouter(method, path string, who *identity.Identity, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	handlers := []gin.HandlerFunc{}
	if who != nil {
		handlers = append(handlers, func(c *gin.Context) {
			c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), *who))
			c.Next()
		})
	}
	handlers = append(handlers, h)

	r.Handle(method, path, handlers...)

	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
		}
	}

	return w, env
}

func assertNoPassword(t *testing.T, body []byte) {
	t.Helper()

	if bytes.Contains(body, []byte("password")) || bytes.Contains(body, []byte("hashed:")) {
		t.Fatalf("response leaks password data: %s", body)
	}
}
