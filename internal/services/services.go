// Package services contains the business logic of the catalog: products and
// their prices, accounts, authentication and visit tracking.
package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	customerrors "github.com/axellelanca/catalog/internal/errors"
)

// Names of the background tasks submitted by the services.
const (
	TaskTrackProductRetrieve   = "track_product_retrieve"
	TaskSendProductUpdateEmail = "send_product_update_email"
)

// TaskDispatcher hands work off to the background task queue.
type TaskDispatcher interface {
	Submit(name string, args ...any) error
}

// Field validation messages, worded like the API has always reported them.
const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
)

func msgMaxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func msgDoesNotExist(pk any) string {
	return fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", pk)
}

func msgUnique(model, field string) string {
	return fmt.Sprintf("%s with this %s already exists.", model, field)
}

// checkText validates a required text field of at most max characters.
func checkText(v *customerrors.ValidationError, field string, value *string, max int, required bool) {
	if value == nil {
		if required {
			v.Add(field, msgRequired)
		}
		return
	}
	switch {
	case strings.TrimSpace(*value) == "":
		v.Add(field, msgBlank)
	case utf8.RuneCountInString(*value) > max:
		v.Add(field, msgMaxLength(max))
	}
}

// checkMoney validates a decimal(10,2) amount.
func checkMoney(v *customerrors.ValidationError, field string, value *decimal.Decimal, required bool) {
	if value == nil {
		if required {
			v.Add(field, msgRequired)
		}
		return
	}
	switch {
	case !value.Equal(value.Round(2)):
		v.Add(field, "Ensure that there are no more than 2 decimal places.")
	case value.Abs().GreaterThanOrEqual(decimal.New(1, 8)):
		v.Add(field, "Ensure that there are no more than 8 digits before the decimal point.")
	}
}

// failed returns v as an error when it carries at least one message.
func failed(v *customerrors.ValidationError) error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}
