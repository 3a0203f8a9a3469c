package domain

import (
	"fmt"
	"time"
)

type RideStatus string

const (
	RideOngoing   RideStatus = "ongoing"
	RideCompleted RideStatus = "completed"
	RideCancelled RideStatus = "cancelled"
)

func (s RideStatus) Terminal() bool {
	return s == RideCompleted || s == RideCancelled
}

func (s RideStatus) Label() string {
	switch s {
	case RideOngoing:
		return "Ongoing"
	case RideCompleted:
		return "Completed"
	case RideCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

type RideRecord struct {
	ID            string     `json:"_id"`
	RideID        string     `json:"rideId"`
	Status        RideStatus `json:"status"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	RideStartTime time.Time  `json:"rideStartTime"`
	RideEndTime   time.Time  `json:"rideEndTime"`
	DistanceKm    float64    `json:"distanceKm"`
}

func (r RideRecord) Key() string {
	return r.ID
}

// FormatElapsed renders whole seconds as MM:SS, or HH:MM:SS from one hour on.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
