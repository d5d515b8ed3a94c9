// Command checkout drives a full ticket checkout against a storefront
// backend (see cmd/devserver for a local one). It is the reference
// consumer of the flow controller.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"pos-storefront/internal/api"
	"pos-storefront/internal/checkout"
	"pos-storefront/internal/config"
	"pos-storefront/internal/models"
	"pos-storefront/internal/payment"
	"pos-storefront/internal/rates"
	"pos-storefront/internal/realtime"
	"pos-storefront/internal/session"
)

func main() {
	slug := flag.String("slug", "launch-party", "event storefront slug")
	tierID := flag.String("tier", "tier_ga", "ticket tier id")
	quantity := flag.Int("quantity", 2, "number of tickets")
	name := flag.String("name", "Jordan Example", "customer name")
	email := flag.String("email", "jordan@example.com", "customer email")
	country := flag.String("country", "", "country code for the rate summary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	code := *country
	if code == "" {
		code = cfg.Checkout.DefaultCountry
	}
	printRateSummary(code)

	client := api.NewClient(cfg.API)
	store := session.NewMemoryStore()
	processor := payment.NewClient(cfg.Payment)

	controller := checkout.NewController(client, processor, store,
		checkout.WithUrgencyThreshold(cfg.Checkout.UrgencyThreshold),
		checkout.WithObserver(func(snap checkout.Snapshot) {
			if snap.State == checkout.StateActive && snap.Remaining > 0 {
				return // countdown ticks are too chatty for a CLI
			}
			log.Printf("checkout: state=%s message=%q", snap.State, snap.Message)
		}),
	)
	defer controller.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Locking %d x %s for %s...\n", *quantity, *tierID, *slug)
	if err := controller.Start(ctx, *slug, *tierID, *quantity); err != nil {
		log.Fatalf("Could not reserve tickets: %v", err)
	}

	// Watch availability changes while we hold the reservation
	event, err := client.GetEvent(ctx, *slug)
	if err != nil {
		log.Fatalf("Could not fetch event: %v", err)
	}
	notifier := realtime.NewNotifier(cfg.Realtime, realtime.EventRoom(event.ID), func() {
		log.Printf("realtime: availability changed, refetch suggested")
	})
	notifier.Start()
	defer notifier.Close()

	totals := controller.Totals(models.Tip{Kind: models.TipNone})
	fmt.Printf("Hold placed, %ds remaining. Subtotal %s, tax %s, total %s.\n",
		controller.Remaining(),
		rates.FormatAmount(totals.Subtotal, event.Currency),
		rates.FormatAmount(totals.Tax, event.Currency),
		rates.FormatAmount(totals.Total, event.Currency))

	req := &checkout.ConfirmRequest{
		CustomerName:  *name,
		CustomerEmail: *email,
	}
	if totals.Total > 0 {
		// Processor test card
		req.Card = &payment.Card{
			Number:   "4242424242424242",
			ExpMonth: 12,
			ExpYear:  time.Now().Year() + 2,
			CVC:      "123",
		}
	}

	confirmation, err := controller.Confirm(ctx, req)
	if err != nil {
		log.Fatalf("Checkout failed: %v", err)
	}

	fmt.Printf("Order %s confirmed for %s\n", confirmation.OrderID, confirmation.CustomerEmail)
	for _, ticket := range confirmation.Tickets {
		fmt.Printf("  ticket %s (%s)\n", ticket.ID, ticket.TierName)
	}
}

// printRateSummary shows the effective processing rates a merchant in
// the given country would pay per subscription tier
func printRateSummary(code string) {
	country := rates.GetCountryRate(code)
	fmt.Printf("Processing rates for %s (%s):\n", country.Code, country.Currency)
	fmt.Printf("  contactless auth: %s\n", rates.FormatRate(rates.EffectiveAuthRate(country), country.Currency))
	for _, tier := range []rates.Tier{rates.TierStarter, rates.TierStandard, rates.TierPremium} {
		fmt.Printf("  %-8s in person %-14s manual %s\n",
			tier,
			rates.FormatRate(country.InPerson, country.Currency, tier),
			rates.FormatRate(country.Manual, country.Currency, tier))
	}
	fmt.Println()
}
