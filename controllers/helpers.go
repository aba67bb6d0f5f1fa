package controllers

import (
	"errors"
	"strings"
	"time"

	"laundrypos/checkout"
	"laundrypos/pkg/resp"
	"laundrypos/repository"
	"laundrypos/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// paramID reads a positive numeric path parameter. It writes the 400 itself.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := cast.ToUintE(c.Param(name))
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := cast.ToIntE(c.Query(key))
	if err != nil || c.Query(key) == "" {
		return def
	}
	return v
}

// queryDate parses ?key=YYYY-MM-DD in loc. nil when absent.
func queryDate(c *gin.Context, key string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, errors.New("invalid " + key + " date, expected YYYY-MM-DD")
	}
	return &t, nil
}

// writeError maps service and domain errors onto the response envelope.
func writeError(c *gin.Context, err error) {
	var confirm *checkout.ConfirmationError
	switch {
	case errors.As(err, &confirm):
		resp.ConflictWith(c, err.Error(), gin.H{
			"requiresConfirmation": true,
			"total":                confirm.Total,
			"threshold":            confirm.Threshold,
		})

	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, repository.ErrEntryNotFound),
		errors.Is(err, checkout.ErrUnknownService),
		errors.Is(err, checkout.ErrUnknownLaundryType),
		errors.Is(err, checkout.ErrUnknownEntry),
		errors.Is(err, checkout.ErrLineNotFound):
		resp.NotFound(c, notFoundMessage(err))

	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrSelfDeactivate),
		errors.Is(err, checkout.ErrEmptyDraft),
		errors.Is(err, checkout.ErrPaymentMethodRequired),
		errors.Is(err, checkout.ErrCustomerNameRequired):
		resp.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrInvalidOrConflict),
		errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, checkout.ErrSubmissionInProgress):
		resp.Conflict(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAccountDeactivated):
		resp.Forbidden(c, err.Error())

	default:
		resp.ServerError(c, err)
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "not found"
	}
	return err.Error()
}
