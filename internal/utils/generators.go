package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// GenerateUUID returns a random row id for payments and splits.
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateTransactionID returns a gateway-style transaction reference.
func GenerateTransactionID() string {
	return fmt.Sprintf("TXN-%d-%09d", time.Now().Unix(), randomInt(999999999))
}

// GeneratePaymentIntentID returns a gateway-style payment intent reference.
func GeneratePaymentIntentID() string {
	return fmt.Sprintf("PI-%d-%09d", time.Now().Unix(), randomInt(999999999))
}

// GenerateOrderNumber returns a human-readable order number like
// ORD-20250110-042317.
func GenerateOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", t.Format("20060102"), randomInt(999999))
}

func randomInt(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max+1))
	if err != nil {
		return time.Now().UnixNano() % (max + 1)
	}
	return n.Int64()
}
