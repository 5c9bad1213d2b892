package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/domain/enrollment"
	"github.com/geocoder89/enrollhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type EnrollmentCreator interface {
	Create(ctx context.Context, req enrollment.CreateEnrollmentRequest) (enrollment.Enrollment, error)
}

type EnrollmentsHandler struct {
	repo EnrollmentCreator
}

func NewEnrollmentsHandler(repo EnrollmentCreator) *EnrollmentsHandler {
	return &EnrollmentsHandler{repo: repo}
}

func (h *EnrollmentsHandler) Enroll(ctx *gin.Context) {
	var req enrollment.CreateEnrollmentRequest

	if !bindCastable(ctx, &req, CodeEnrollmentFailed, "There was an issue during your enrollment. Please try again.", "enroll.bind") {
		return
	}

	who, ok := middlewares.IdentityFromContext(ctx)

	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	// force the authenticated identity as the source of truth
	req.UserID = who.ID

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	e, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, CodeEnrollmentFailed, "There was an issue during your enrollment. Please try again.", "enroll.create", err)
		return
	}

	Respond(ctx, http.StatusCreated, CodeEnrollmentSuccessful, "Congratulations, you are now enrolled!", e)
}
