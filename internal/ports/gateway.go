package ports

import (
	"context"

	"github.com/bnema/driver-partner-cli/internal/domain"
)

type SignUpRequest struct {
	FullName          string                   `json:"fullName"`
	MobileNumber      string                   `json:"mobileNumber"`
	Password          string                   `json:"password"`
	RegistrationStage domain.RegistrationStage `json:"regiStatus"`
}

type Credentials struct {
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

type AuthResult struct {
	AccessToken string
	Profile     domain.UserProfile
}

type OTPRequest struct {
	MobileNumber      string                   `json:"mobileNumber"`
	OTP               string                   `json:"otp"`
	RegistrationStage domain.RegistrationStage `json:"regiStatus"`
}

// ProfileUpdate carries only the fields being changed.
type ProfileUpdate struct {
	DriverID          domain.DriverID          `json:"driverId,omitempty"`
	RegistrationStage domain.RegistrationStage `json:"regiStatus,omitempty"`
	FullName          string                   `json:"fullName,omitempty"`
	Gender            string                   `json:"gender,omitempty"`
	City              string                   `json:"city,omitempty"`
	Age               int                      `json:"age,omitempty"`
	Experience        *int                     `json:"experience,omitempty"`
	Skill             string                   `json:"skill,omitempty"`
	Email             string                   `json:"email,omitempty"`
	ProfilePicture    string                   `json:"profilePicture,omitempty"`
	DrivingLicense    string                   `json:"drivingLicense,omitempty"`
}

type NotificationPage struct {
	Notifications []domain.Notification `json:"notifications"`
	HasMore       bool                  `json:"hasMore"`
}

type Pagination struct {
	TotalPages int `json:"totalPages"`
}

type RideHistoryPage struct {
	History    []domain.RideRecord `json:"history"`
	Pagination Pagination          `json:"pagination"`
}

// Gateway is the remote driver-partner API. Rejections surface as
// *domain.RemoteError and failed round trips as *domain.TransportError.
type Gateway interface {
	SignUp(ctx context.Context, req SignUpRequest) (AuthResult, error)
	SignIn(ctx context.Context, creds Credentials) (AuthResult, error)
	FetchProfile(ctx context.Context, token string) (domain.UserProfile, error)
	VerifyOTP(ctx context.Context, token string, req OTPRequest) (domain.UserProfile, error)
	UpdateDriverProfile(ctx context.Context, token string, update ProfileUpdate) (domain.UserProfile, error)
	DeleteAccount(ctx context.Context, token string) error
	FetchNotifications(ctx context.Context, token string, pageSize, page int) (NotificationPage, error)
	FetchRideHistory(ctx context.Context, token string, pageSize, page int) (RideHistoryPage, error)
}
