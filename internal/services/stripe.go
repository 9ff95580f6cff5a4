package services

import (
	"fmt"
	"log"
	"os"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var stripeClient *client.API

// InitStripe initializes the payment gateway client.
func InitStripe() error {
	key := os.Getenv("PAYMENT_GATEWAY_KEY")
	if key == "" {
		log.Println("Warning: PAYMENT_GATEWAY_KEY not set. Payment intents disabled.")
		return nil
	}

	sc := &client.API{}
	sc.Init(key, nil)
	stripeClient = sc

	log.Println("Stripe payment gateway initialized")
	return nil
}

// CreatePaymentIntent creates a usd payment intent and returns its client
// secret for the frontend to confirm.
func CreatePaymentIntent(amountInCents int64) (string, error) {
	if stripeClient == nil {
		return "", fmt.Errorf("payment gateway not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := stripeClient.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}

	return intent.ClientSecret, nil
}
