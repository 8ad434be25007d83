package service

import (
	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// QRCodeService defines the interface for order pickup QR codes
type QRCodeService interface {
	// GeneratePickupQR renders a PNG QR code the seller scans when the buyer collects the order
	GeneratePickupQR(order *entity.Order) ([]byte, error)

	// ParsePickupQR parses scanned QR data and returns the order ID
	ParsePickupQR(qrData string) (uuid.UUID, error)
}
