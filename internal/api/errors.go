package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/assessgen/internal/assessment"
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/llm"
	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/problemgen"
)

// AppError is the JSON body of every error response.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

// Error codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	CodeLLMUnavailable     = "LLM_UNAVAILABLE"
	CodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeTimeout            = "TIMEOUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

func validationError(message, details string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details, Status: http.StatusBadRequest}
}

func notFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func unavailable(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details, Status: http.StatusServiceUnavailable}
}

func internalError(details string) *AppError {
	return &AppError{Code: CodeInternalError, Message: "internal server error", Details: details, Status: http.StatusInternalServerError}
}

// toAppError maps domain errors onto HTTP responses.
func toAppError(err error) *AppError {
	var (
		appErr      *AppError
		notFoundErr *catalog.NotFoundError
		conflict    *catalog.ConflictError
		invalid     *catalog.InvalidProblemError
		unavail     *catalog.UnavailableError
		reqErr      *assessment.RequestError
		strategy    *planner.UnknownStrategyError
		validation  *problemgen.ValidationError
		rateLimit   *llm.ErrRateLimit
		provider    *llm.ErrProviderUnavailable
		badResponse *llm.ErrInvalidResponse
		maxTokens   *llm.ErrMaxTokensExceeded
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: CodeTimeout, Message: "request timed out", Details: err.Error(), Status: http.StatusGatewayTimeout}
	case errors.As(err, &notFoundErr):
		return notFound(notFoundErr.Error())
	case errors.As(err, &conflict):
		return &AppError{Code: CodeConflict, Message: conflict.Error(), Status: http.StatusConflict}
	case errors.As(err, &invalid):
		return validationError("invalid problem", invalid.Error())
	case errors.As(err, &reqErr):
		return validationError("invalid assessment request", reqErr.Error())
	case errors.As(err, &strategy):
		return validationError("invalid assessment request", strategy.Error())
	case errors.As(err, &unavail):
		return unavailable(CodeCatalogUnavailable, "problem catalog unavailable", unavail.Error())
	case errors.As(err, &validation), errors.As(err, &badResponse), errors.As(err, &maxTokens):
		return &AppError{Code: CodeGenerationFailed, Message: "generated problem was rejected", Details: err.Error(), Status: http.StatusBadGateway}
	case errors.As(err, &rateLimit), errors.As(err, &provider):
		return unavailable(CodeLLMUnavailable, "LLM provider unavailable", err.Error())
	}
	return internalError(err.Error())
}

// respondError writes err as an AppError and aborts the chain.
func respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
