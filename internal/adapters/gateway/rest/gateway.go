package rest

import (
	"context"
	"net/http"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

var _ ports.Gateway = Adapter{}

type authData struct {
	Token  string             `json:"token"`
	Driver domain.UserProfile `json:"driver"`
}

func (d authData) result() ports.AuthResult {
	return ports.AuthResult{AccessToken: d.Token, Profile: d.Driver}
}

func (a Adapter) SignUp(ctx context.Context, req ports.SignUpRequest) (ports.AuthResult, error) {
	var data authData
	err := a.do(ctx, call{op: "sign up", method: http.MethodPost, path: a.API.SignUpPath, body: req}, &data)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return data.result(), nil
}

func (a Adapter) SignIn(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	var data authData
	err := a.do(ctx, call{op: "sign in", method: http.MethodPost, path: a.API.SignInPath, body: creds}, &data)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return data.result(), nil
}

func (a Adapter) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := a.do(ctx, call{op: "fetch profile", method: http.MethodGet, path: a.API.ProfilePath, token: token}, &profile)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (a Adapter) VerifyOTP(ctx context.Context, token string, req ports.OTPRequest) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := a.do(ctx, call{op: "verify otp", method: http.MethodPost, path: a.API.VerifyOTPPath, token: token, body: req}, &profile)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (a Adapter) UpdateDriverProfile(ctx context.Context, token string, update ports.ProfileUpdate) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := a.do(ctx, call{op: "update profile", method: http.MethodPost, path: a.API.UpdatePath, token: token, body: update}, &profile)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func (a Adapter) DeleteAccount(ctx context.Context, token string) error {
	return a.do(ctx, call{op: "delete account", method: http.MethodPost, path: a.API.DeleteAccountPath, token: token, body: struct{}{}}, nil)
}

func (a Adapter) FetchNotifications(ctx context.Context, token string, pageSize, page int) (ports.NotificationPage, error) {
	var result ports.NotificationPage
	err := a.do(ctx, call{
		op:     "fetch notifications",
		method: http.MethodGet,
		path:   a.API.NotificationsPath,
		token:  token,
		query:  pageQuery(pageSize, page),
	}, &result)
	if err != nil {
		return ports.NotificationPage{}, err
	}
	return result, nil
}

func (a Adapter) FetchRideHistory(ctx context.Context, token string, pageSize, page int) (ports.RideHistoryPage, error) {
	var result ports.RideHistoryPage
	err := a.do(ctx, call{
		op:     "fetch ride history",
		method: http.MethodGet,
		path:   a.API.RideHistoryPath,
		token:  token,
		query:  pageQuery(pageSize, page),
	}, &result)
	if err != nil {
		return ports.RideHistoryPage{}, err
	}
	return result, nil
}
