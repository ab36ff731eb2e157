package domain

import (
	"fmt"
	"strings"
	"time"
)

// Biller is a payee that accepts BPAY payments.
type Biller struct {
	ID              string    `json:"id"`
	BillerCode      string    `json:"billerCode"`
	Name            string    `json:"name"`
	ReferenceNumber string    `json:"referenceNumber"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BillerPaymentDescription appends the biller details to a BPAY description,
// e.g. "Gas | Biller: Gas Service, Code: 1234, Ref: 5678".
func BillerPaymentDescription(description string, biller Biller, referenceNumber string) string {
	details := fmt.Sprintf("| Biller: %s, Code: %s, Ref: %s", biller.Name, biller.BillerCode, referenceNumber)
	description = strings.TrimSpace(description)
	if description == "" {
		return details
	}
	return description + " " + details
}
