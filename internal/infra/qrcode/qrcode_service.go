// Package qrcode renders and parses order pickup QR codes.
package qrcode

import (
	"encoding/json"

	"rescue/config"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	pickupType  = "pickup"
	defaultSize = 256
)

// ErrInvalidPayload is returned when scanned data is not a pickup QR code.
var ErrInvalidPayload = errors.New("invalid pickup QR payload")

type qrcodeService struct {
	size  int
	level qrcode.RecoveryLevel
}

// PickupPayload is the JSON document encoded in a pickup QR code.
type PickupPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Type        string `json:"type"`
}

// NewQRCodeService builds the service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, ""
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{size: size, level: recoveryLevel(level)}
}

func recoveryLevel(name string) qrcode.RecoveryLevel {
	switch name {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GeneratePickupQR renders the order's pickup payload as a PNG.
func (s *qrcodeService) GeneratePickupQR(order *entity.Order) ([]byte, error) {
	payload, err := json.Marshal(PickupPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Type:        pickupType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal pickup payload")
	}

	code, err := qrcode.New(string(payload), s.level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render QR code")
	}

	return png, nil
}

// ParsePickupQR returns the order ID carried by scanned pickup data.
func (s *qrcodeService) ParsePickupQR(qrData string) (uuid.UUID, error) {
	var payload PickupPayload
	if err := json.Unmarshal([]byte(qrData), &payload); err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	if payload.Type != pickupType {
		return uuid.Nil, errors.Wrapf(ErrInvalidPayload, "unexpected type %q", payload.Type)
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidPayload, "order id is not a uuid")
	}

	return orderID, nil
}
