package cmd

import (
	"errors"
	"net/http"

	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/pkg/clierr"
)

// paymentMethods maps the payment method codes accepted at checkout to their
// display names.
var paymentMethods = map[string]string{
	"CashOnDelivery": "Cash on delivery",
	"CreditCard":     "Credit card",
	"OnlineGateway":  "Online payment gateway",
}

// isValidPaymentMethod checks if a given payment method code is accepted.
func isValidPaymentMethod(method string) bool {
	_, ok := paymentMethods[method]
	return ok
}

// classifyError maps an API failure to a CLI error category with a message
// suitable for terminal output.
func classifyError(err error) *clierr.Error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return clierr.New(clierr.Network, "Could not reach the store. Please check your connection and the API address.", err)
	}

	switch {
	case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
		return clierr.New(clierr.Auth, "You are not signed in or your session has expired. Use `zanbil login` first.", err)
	case apiErr.Status == http.StatusNotFound:
		return clierr.New(clierr.NotFound, "The requested resource was not found.", err)
	case apiErr.Status >= 400 && apiErr.Status < 500:
		return clierr.New(clierr.Validation, apiErr.Error(), err)
	default:
		return clierr.New(clierr.Internal, "The store returned an unexpected error. Please check the logs for details.", err)
	}
}
