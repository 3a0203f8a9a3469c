package domain

import "time"

// Identifiable is implemented by every record kept in a synchronized list.
type Identifiable interface {
	Key() string
}

type NotificationCategory string

const (
	CategoryAccepted  NotificationCategory = "accepted"
	CategoryCancelled NotificationCategory = "cancelled"
	CategoryPayment   NotificationCategory = "payment"
	CategoryCompleted NotificationCategory = "completed"
	CategoryOngoing   NotificationCategory = "ongoing"
	CategoryWelcome   NotificationCategory = "welcome"
)

func (c NotificationCategory) Label() string {
	switch c {
	case CategoryAccepted:
		return "Accepted"
	case CategoryCancelled:
		return "Cancelled"
	case CategoryPayment:
		return "Payment"
	case CategoryCompleted:
		return "Completed"
	case CategoryOngoing:
		return "Ongoing"
	case CategoryWelcome:
		return "Welcome"
	default:
		return "Update"
	}
}

type Notification struct {
	ID        string               `json:"_id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"type"`
	CreatedAt time.Time            `json:"createdAt"`
}

func (n Notification) Key() string {
	return n.ID
}

// WelcomeNotification is shown when the driver has no notifications at all.
func WelcomeNotification() Notification {
	return Notification{
		ID:       "default-welcome",
		Title:    "Welcome!",
		Message:  "Thanks for joining our community. Enjoy safe rides!",
		Category: CategoryWelcome,
	}
}
