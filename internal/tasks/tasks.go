// Package tasks binds the background task names submitted by the services to
// their handlers on the worker queue.
package tasks

import (
	"context"
	"errors"
	"fmt"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/mail"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/services"
	"github.com/axellelanca/catalog/internal/workers"
)

// Registrar is the part of workers.Queue used to bind handlers.
type Registrar interface {
	Register(name string, h workers.Handler)
}

// VisitTracker records an anonymous product view.
type VisitTracker interface {
	TrackProductRetrieve(ctx context.Context, productID uint, meta models.VisitMetadata) error
}

// Register binds every task the application submits.
func Register(r Registrar, visits VisitTracker, sender mail.Sender) {
	r.Register(services.TaskTrackProductRetrieve, TrackProductRetrieve(visits))
	r.Register(services.TaskSendProductUpdateEmail, SendProductUpdateEmail(sender))
}

// TrackProductRetrieve handles (productID uint, metadata models.VisitMetadata).
func TrackProductRetrieve(visits VisitTracker) workers.Handler {
	return func(ctx context.Context, args []any) error {
		if len(args) != 2 {
			return workers.Permanent(fmt.Errorf("%s: expected 2 arguments, got %d", services.TaskTrackProductRetrieve, len(args)))
		}
		productID, ok := args[0].(uint)
		if !ok {
			return workers.Permanent(fmt.Errorf("%s: product id has type %T", services.TaskTrackProductRetrieve, args[0]))
		}
		meta, ok := args[1].(models.VisitMetadata)
		if !ok {
			return workers.Permanent(fmt.Errorf("%s: metadata has type %T", services.TaskTrackProductRetrieve, args[1]))
		}
		return visits.TrackProductRetrieve(ctx, productID, meta)
	}
}

// SendProductUpdateEmail handles (subject, body string, recipients []string).
// Missing mail credentials are not retried.
func SendProductUpdateEmail(sender mail.Sender) workers.Handler {
	return func(ctx context.Context, args []any) error {
		if len(args) != 3 {
			return workers.Permanent(fmt.Errorf("%s: expected 3 arguments, got %d", services.TaskSendProductUpdateEmail, len(args)))
		}
		subject, ok1 := args[0].(string)
		body, ok2 := args[1].(string)
		recipients, ok3 := args[2].([]string)
		if !ok1 || !ok2 || !ok3 {
			return workers.Permanent(fmt.Errorf("%s: unexpected argument types %T, %T, %T",
				services.TaskSendProductUpdateEmail, args[0], args[1], args[2]))
		}

		err := sender.Send(ctx, subject, body, recipients)
		if errors.Is(err, customerrors.ErrMissingMailCredentials) {
			return workers.Permanent(err)
		}
		return err
	}
}
