package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/http/middlewares"
	"github.com/geocoder89/enrollhub/internal/security"
	"github.com/gin-gonic/gin"
)

const storeTimeout = 3 * time.Second

type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	ListByEmail(ctx context.Context, email string) ([]account.Account, error)
	GetProfile(ctx context.Context, id string) (account.Account, error)
}

type AccountWriter interface {
	Create(ctx context.Context, a account.Account) (account.Account, error)
	Update(ctx context.Context, id string, changes account.Changes) (account.Account, error)
}

type AccountStore interface {
	AccountReader
	AccountWriter
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns security.ErrPasswordMismatch on a wrong password.
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, error)
}

// LoginObserver receives the response code of every login attempt.
type LoginObserver interface {
	ObserveLogin(code string)
}

type AccountsHandler struct {
	accounts AccountStore
	hasher   PasswordHasher
	tokens   TokenIssuer
	logins   LoginObserver
}

func NewAccountsHandler(accounts AccountStore, hasher PasswordHasher, tokens TokenIssuer, logins LoginObserver) *AccountsHandler {
	return &AccountsHandler{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logins:   logins,
	}
}

func (h *AccountsHandler) Register(ctx *gin.Context) {
	var req account.RegisterRequest

	if !bindCastable(ctx, &req, CodeRegistrationFailed, "An error occurred during registration. Please try again.", "register.bind") {
		return
	}

	hash, err := h.hasher.Hash(string(req.Password))

	if err != nil {
		RespondInternal(ctx, CodeRegistrationFailed, "An error occurred during registration. Please try again.", "register.hash", err)
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	created, err := h.accounts.Create(cctx, account.NewFromRegisterRequest(req, hash))

	if err != nil {
		RespondInternal(ctx, CodeRegistrationFailed, "An error occurred during registration. Please try again.", "register.create", err)
		return
	}

	Respond(ctx, http.StatusCreated, CodeRegistrationSuccess, "You are now registered!", created)
}

func (h *AccountsHandler) Login(ctx *gin.Context) {
	var req account.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	code := h.login(ctx, req)
	if h.logins != nil {
		h.logins.ObserveLogin(code)
	}
}

func (h *AccountsHandler) login(ctx *gin.Context, req account.LoginRequest) string {
	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	found, err := h.accounts.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondNotFound(ctx, CodeUserNotRegistered, "Please register to login.")
			return CodeUserNotRegistered
		}

		RespondInternal(ctx, CodeLoginFailed, "An error occurred during login. Please try again later.", "login.lookup", err)
		return CodeLoginFailed
	}

	err = h.hasher.Compare(found.PasswordHash, req.Password)

	if err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			Respond(ctx, http.StatusBadRequest, CodePasswordIncorrect, "Password is incorrect. Please try again.", nil)
			return CodePasswordIncorrect
		}

		RespondInternal(ctx, CodeLoginFailed, "An error occurred during login. Please try again later.", "login.compare", err)
		return CodeLoginFailed
	}

	token, err := h.tokens.GenerateAccessToken(found.ID, found.Email, found.Role)

	if err != nil {
		RespondInternal(ctx, CodeLoginFailed, "An error occurred during login. Please try again later.", "login.token", err)
		return CodeLoginFailed
	}

	ctx.JSON(http.StatusOK, Envelope{
		Code:  CodeLoginSuccess,
		Token: token,
	})
	return CodeLoginSuccess
}

func (h *AccountsHandler) CheckEmail(ctx *gin.Context) {
	var req account.CheckEmailRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	matches, err := h.accounts.ListByEmail(cctx, req.Email)

	if err != nil {
		RespondInternal(ctx, CodeCheckEmailFailed, "An error occurred while checking the email.", "check_email.list", err)
		return
	}

	if len(matches) == 0 {
		RespondNotFound(ctx, CodeEmailNotExisting, "The user is not registered.")
		return
	}

	Respond(ctx, http.StatusOK, CodeEmailExists, "The user is registered.", nil)
}

func (h *AccountsHandler) GetProfile(ctx *gin.Context) {
	who, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	profile, err := h.accounts.GetProfile(cctx, who.ID)

	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondNotFound(ctx, CodeUserNotFound, "Cannot find user with the provided ID.")
			return
		}

		RespondInternal(ctx, CodeInternal, "An error occurred while fetching the profile.", "profile.get", err)
		return
	}

	Respond(ctx, http.StatusOK, CodeUserFound, "User profile fetched successfully.", profile)
}

func (h *AccountsHandler) UpdatePassword(ctx *gin.Context) {
	// the path id is used verbatim; ownership is checked after input validation
	targetID := ctx.Param("userId")

	var req account.UpdatePasswordRequest

	if err := shouldBindJSON(ctx, &req); err != nil {
		rule, ok := failedRule(err, "NewPassword")

		switch {
		case ok && rule == "required":
			RespondBadRequest(ctx, CodePasswordMissing, "New password is required.", nil)
		case ok && rule == "min":
			RespondBadRequest(ctx, CodePasswordTooShort, "Password must be at least 6 characters long.", nil)
		default:
			RespondBadRequest(ctx, CodeInvalidRequest, "Invalid request body.", parseBindError(err, &req))
		}
		return
	}

	who, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !who.CanManage(targetID) {
		RespondForbidden(ctx, "You can only change your own password.")
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, CodeInternal, "An error occurred while updating the password.", "update_password.hash", err)
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	updated, err := h.accounts.Update(cctx, targetID, account.PasswordChange(hash))

	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondNotFound(ctx, CodeUserNotFound, "Cannot find user with the provided ID.")
			return
		}

		RespondInternal(ctx, CodeInternal, "An error occurred while updating the password.", "update_password.update", err)
		return
	}

	Respond(ctx, http.StatusOK, CodePasswordUpdated,
		fmt.Sprintf("Password successfully updated for %s %s.", updated.FirstName, updated.LastName),
		updated,
	)
}

func (h *AccountsHandler) UpdateProfile(ctx *gin.Context) {
	var req account.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	who, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	updated, err := h.accounts.Update(cctx, who.ID, req.Changes())

	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			RespondNotFound(ctx, CodeUserNotFound, "Cannot find user with the provided ID.")
			return
		}

		RespondInternal(ctx, CodeInternal, "An error occurred while updating the profile.", "profile.update", err)
		return
	}

	Respond(ctx, http.StatusOK, CodeProfileUpdated, "User profile updated successfully.", updated)
}
