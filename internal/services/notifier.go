package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/axellelanca/catalog/internal/models"
)

// AdminDirectory lists the administrators who receive notifications.
type AdminDirectory interface {
	ListActiveStaff(ctx context.Context) ([]models.User, error)
}

const unknownActor = "unknown"

const updateEmailBody = `Hola equipo,

Se ha realizado una modificación en el siguiente producto:

🏍️ Nombre: %s
🔖 SKU: %s
🏷️ Marca: %s
💰 Precio actual: $%s

Modificado por: %s
Fecha y hora: %s

Si no reconoces esta acción, por favor revisa el historial o contacta al equipo de soporte.

Saludos,
Catálogo Automatizado
`

// ProductNotifier emails the other administrators when a product changes.
type ProductNotifier struct {
	admins     AdminDirectory
	dispatcher TaskDispatcher
	now        func() time.Time
	logger     *slog.Logger
}

func NewProductNotifier(admins AdminDirectory, dispatcher TaskDispatcher, logger *slog.Logger) *ProductNotifier {
	return &ProductNotifier{
		admins:     admins,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger.With("service", "notifier"),
	}
}

// Compose builds the subject and body of the update email. product.Brand
// must be loaded.
func (n *ProductNotifier) Compose(product *models.Product, actor *models.User) (subject, body string) {
	by := unknownActor
	if actor != nil {
		by = actor.Email
	}

	subject = fmt.Sprintf("[Catálogo] Producto actualizado: %s (%s)", product.Name, product.SKU)
	body = fmt.Sprintf(updateEmailBody,
		product.Name,
		product.SKU,
		product.Brand.Name,
		product.Price.StringFixed(2),
		by,
		n.now().UTC().Format("2006-01-02 15:04")+" UTC",
	)
	return subject, body
}

// NotifyProductUpdated submits the update email for every active
// administrator except actor, matched on the exact stored email. Nothing is submitted when nobody is left.
func (n *ProductNotifier) NotifyProductUpdated(ctx context.Context, product *models.Product, actor *models.User) error {
	admins, err := n.admins.ListActiveStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notification recipients: %w", err)
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		if actor != nil && admin.Email == actor.Email {
			continue
		}
		recipients = append(recipients, admin.Email)
	}
	if len(recipients) == 0 {
		n.logger.Debug("no recipients for product update", "sku", product.SKU)
		return nil
	}

	subject, body := n.Compose(product, actor)
	if err := n.dispatcher.Submit(TaskSendProductUpdateEmail, subject, body, recipients); err != nil {
		return fmt.Errorf("failed to submit update email for %s: %w", product.SKU, err)
	}
	n.logger.Info("product update email submitted", "sku", product.SKU, "recipients", len(recipients))
	return nil
}
