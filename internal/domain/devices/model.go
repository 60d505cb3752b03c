package devices

import (
	"time"

	"vetco-api/internal/ports/auth"
)

// Device es un token de push Expo registrado por un principal. Un mismo
// principal puede tener varios (teléfono + tablet).
type Device struct {
	ID string

	OwnerKind auth.ActorKind
	OwnerID   string

	PushToken string
	Platform  string // "ios", "android"

	CreatedAt time.Time
}
