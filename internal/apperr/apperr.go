package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"wastage-backend/internal/store"
)

type Kind int

const (
	KindInternal Kind = iota
	KindConfigurationMissing
	KindValidation
	KindUpstream
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

const (
	DegradedHeader = "X-Degraded-Mode"
	DegradedValue  = "store-not-configured"
)

func (k Kind) Status() int {
	switch k {
	case KindConfigurationMissing:
		return fiber.StatusServiceUnavailable
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindUpstream:
		return fiber.StatusBadGateway
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// Error: kullanıcıya gösterilecek mesaj + loglanacak iç hata
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// FromStore: store sentinel hatalarını HTTP anlamına çevirir
func FromStore(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return Wrap(KindNotFound, "Record not found", err)
	case errors.Is(err, store.ErrNotConfigured):
		return Wrap(KindConfigurationMissing, "Record store is not configured. Writes are disabled.", err)
	case errors.Is(err, store.ErrDuplicateEmail):
		return Wrap(KindConflict, "Email already registered", err)
	}
	return Wrap(KindUpstream, msg, err)
}

// MarkDegraded: depo yoksa okuma cevapları boş gelir, istemci bunu header'dan anlar
func MarkDegraded(c *fiber.Ctx, degraded bool) {
	if degraded {
		c.Set(DegradedHeader, DegradedValue)
	}
}

// ErrorHandler: *fiber.Error ve *Error JSON'a çevrilir, beklenmeyenler loglanır
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		var ae *Error
		if errors.As(err, &ae) {
			if ae.Kind == KindUpstream || ae.Kind == KindInternal || ae.Kind == KindConfigurationMissing {
				log.WithFields(logrus.Fields{
					"method": c.Method(),
					"path":   c.Path(),
				}).WithError(ae.Err).Error(ae.Message)
			}
			return c.Status(ae.Kind.Status()).JSON(fiber.Map{"error": ae.Message})
		}

		log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unexpected server error",
		})
	}
}
