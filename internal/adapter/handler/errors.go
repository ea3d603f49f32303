package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/rl1809/food-delivery/internal/core/service"
)

type errorMapping struct {
	err        error
	kind       string
	httpStatus int
	grpcCode   codes.Code
}

// errorMappings keeps every service error distinguishable on both
// transports.
var errorMappings = []errorMapping{
	{service.ErrNotAuthorized, "not_authorized", http.StatusForbidden, codes.PermissionDenied},
	{service.ErrRoleAlreadyAssigned, "role_already_assigned", http.StatusConflict, codes.AlreadyExists},
	{service.ErrDuplicateRequest, "duplicate_request", http.StatusConflict, codes.AlreadyExists},
	{service.ErrNotFound, "not_found", http.StatusNotFound, codes.NotFound},
	{service.ErrInsufficientBalance, "insufficient_balance", http.StatusPaymentRequired, codes.FailedPrecondition},
	{service.ErrInvalidTransition, "invalid_transition", http.StatusUnprocessableEntity, codes.Aborted},
	{service.ErrInvalidAmount, "invalid_amount", http.StatusBadRequest, codes.InvalidArgument},
	{service.ErrInvalidIdentity, "invalid_identity", http.StatusBadRequest, codes.InvalidArgument},
	{service.ErrInvalidName, "invalid_name", http.StatusBadRequest, codes.InvalidArgument},
	{service.ErrClosed, "unavailable", http.StatusServiceUnavailable, codes.Unavailable},
	{service.ErrJournalBacklog, "journal_backlog", http.StatusServiceUnavailable, codes.Unavailable},
}

var internalError = errorMapping{kind: "internal", httpStatus: http.StatusInternalServerError, grpcCode: codes.Internal}

func classify(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m
		}
	}
	return internalError
}
