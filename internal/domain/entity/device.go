package entity

import (
	"time"

	"github.com/google/uuid"
)

// Platform is the client platform a device registered from.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

// Device is a seller device registered for new-order push notifications.
type Device struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the device.
	AccountID uuid.UUID // The account that owns this device.
	FCMToken  string    // Firebase Cloud Messaging registration token.
	DeviceID  string    // Client-side device identifier, unique per account.
	Platform  Platform
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
