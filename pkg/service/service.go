// Package service holds what the business services share: request
// validation and the rule that turns raw persistence failures into
// domain.StoreError. The services themselves live in sub-packages:
//
//	import "github.com/amirasaad/waribank/pkg/service/customer"
//	import "github.com/amirasaad/waribank/pkg/service/account"
//	import "github.com/amirasaad/waribank/pkg/service/transaction"
//	import "github.com/amirasaad/waribank/pkg/service/loan"
//	import "github.com/amirasaad/waribank/pkg/service/report"
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/waribank/pkg/domain"
	"github.com/amirasaad/waribank/pkg/utils"
	"github.com/go-playground/validator/v10"
)

// MaxIDAttempts bounds how often an operation is retried when a random
// account or reference number collides with an existing one.
const MaxIDAttempts = 3

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "mailbox" accepts any RFC 5322 address, including dotless domains.
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return utils.IsEmail(fl.Field().String())
	})
	return v
}

// Validate checks req against its `validate` tags. Failures wrap
// domain.ErrValidation.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "mailbox", "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

// Fail returns domain errors unchanged. Anything else is logged at ERROR
// and wrapped in a domain.StoreError naming op.
func Fail(logger *slog.Logger, op string, err error) error {
	if err == nil || domain.IsDomainError(err) {
		return err
	}
	logger.Error(op+" failed", "error", err)
	return &domain.StoreError{Op: op, Err: err}
}

// IsCollision reports whether err is a unique-key violation that a fresh
// random identifier could resolve.
func IsCollision(err error) bool {
	return errors.Is(err, domain.ErrAlreadyExists)
}

// RetryOnCollision runs op up to MaxIDAttempts times while it fails with
// a unique-key collision. op must generate fresh identifiers on each call.
func RetryOnCollision(op func() error) error {
	var err error
	for range MaxIDAttempts {
		if err = op(); !IsCollision(err) {
			return err
		}
	}
	return err
}
