package domain

const PushTypeNewUserSignup = "NEW_USER_SIGNUP"

type PushPayload struct {
	Type   string
	Fields map[string]string
}

// PushDestination reports where a tapped push notification leads. Unknown
// types have no destination.
func PushDestination(payload PushPayload) (Destination, bool) {
	switch payload.Type {
	case PushTypeNewUserSignup:
		return DestinationRequestedUsers, true
	default:
		return "", false
	}
}
