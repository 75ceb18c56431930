package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for order QR code generation and parsing
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code pointing at an order
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the order ID
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
