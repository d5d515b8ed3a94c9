package checkout

import (
	"context"
	"errors"
	"fmt"

	"pos-storefront/internal/models"
	"pos-storefront/internal/payment"
)

// MenuAPI is the slice of the gateway client the preorder flow uses
type MenuAPI interface {
	GetMenu(ctx context.Context, slug string) (*models.Catalog, error)
	CreatePreorder(ctx context.Context, slug string, req *models.PreorderRequest) (*models.PreorderResponse, error)
	GetPreorderStatus(ctx context.Context, slug, orderID, email string) (*models.PreorderStatus, error)
}

// PreorderForm carries the customer input for a menu preorder
type PreorderForm struct {
	CustomerName  string
	CustomerEmail string
	PaymentType   models.PaymentType
	Card          *payment.Card // required only for pay-now with a non-zero total
	Tip           models.Tip
}

// PlacePreorder validates and submits a menu preorder. Pay-at-pickup
// orders skip tokenization entirely, as do zero-total pay-now orders;
// the ordering mirrors the ticket confirm pipeline.
func PlacePreorder(ctx context.Context, menuAPI MenuAPI, tokenizer Tokenizer, catalog *models.Catalog, cart *models.Cart, form *PreorderForm) (*models.PreorderResponse, error) {
	if err := models.ValidateCustomer(form.CustomerName, form.CustomerEmail); err != nil {
		return nil, err
	}

	if !form.PaymentType.IsValid() {
		return nil, errors.New("payment type is required")
	}

	if cart.IsEmpty() {
		return nil, errors.New("order is empty")
	}

	items := make([]models.PreorderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		item := catalog.Item(line.ItemID)
		if item == nil {
			return nil, models.ErrItemNotFound
		}
		if err := line.Validate(0, item.Available); err != nil {
			return nil, fmt.Errorf("%s: %s", item.Name, err.Error())
		}
		items = append(items, models.PreorderItem{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		})
	}

	totals := cart.Totals(catalog.TaxRate, form.Tip)

	paymentMethodID := ""
	if form.PaymentType.RequiresCard() {
		paymentMethodID = models.FreePaymentMethodID
		if totals.Total > 0 {
			if form.Card == nil {
				return nil, errors.New("payment details are required")
			}
			token, err := tokenizer.CreatePaymentMethod(ctx, form.Card)
			if err != nil {
				return nil, fmt.Errorf("payment could not be processed: %s", err.Error())
			}
			paymentMethodID = token
		}
	}

	preorder, err := menuAPI.CreatePreorder(ctx, catalog.Slug, &models.PreorderRequest{
		Items:           items,
		CustomerEmail:   form.CustomerEmail,
		CustomerName:    form.CustomerName,
		PaymentType:     form.PaymentType,
		PaymentMethodID: paymentMethodID,
		Tip:             totals.Tip,
	})
	if err != nil {
		var apiErr *models.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("order could not be placed: %s", apiErr.Message)
		}
		return nil, errors.New("order could not be placed, please try again")
	}

	return preorder, nil
}
