// Package apperrors carries the error taxonomy the API exposes to clients.
// Business failures travel as *Error values up from the engine functions and
// are translated to an HTTP status and JSON body at the edge; anything else
// is reported as a generic server failure without internal detail.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/moda-viva/storefront-api/logger"
)

type Kind int

const (
	Validation Kind = iota
	NotFound
	InsufficientStock
	ProductUnavailable
	InvalidTransition
	Unauthenticated
	Forbidden
	Persistence
)

type Error struct {
	Kind    Kind
	Message string
	// Available carries the sellable quantity on stock failures.
	Available *int
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to the HTTP status the API contract defines.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation, InsufficientStock, ProductUnavailable, InvalidTransition:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Stock builds an InsufficientStock error reporting how many units remain
// sellable for the offending product.
func Stock(productName string, available int) *Error {
	return &Error{
		Kind:      InsufficientStock,
		Message:   fmt.Sprintf("insufficient stock for product: %s", productName),
		Available: &available,
	}
}

// Respond writes err to the client as the standard error envelope.
func Respond(c *gin.Context, err error) {
	var ae *Error
	if errors.As(err, &ae) {
		body := gin.H{"error": ae.Message}
		if ae.Available != nil {
			body["available"] = *ae.Available
		}
		c.JSON(ae.Status(), body)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected server error"})
}
