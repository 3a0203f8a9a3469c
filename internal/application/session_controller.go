package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

// SessionController is the only writer of the process-wide session.
type SessionController struct {
	gateway   ports.Gateway
	store     ports.SessionStore
	navigator ports.Navigator
	logger    *slog.Logger

	mu      sync.RWMutex
	session domain.Session
}

func NewSessionController(gateway ports.Gateway, store ports.SessionStore, navigator ports.Navigator, logger *slog.Logger) *SessionController {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &SessionController{
		gateway:   gateway,
		store:     store,
		navigator: navigator,
		logger:    logger,
	}
}

func (c *SessionController) Snapshot() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.session.Clone()
}

func (c *SessionController) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.session.AccessToken
}

func (c *SessionController) Screen() domain.Screen {
	return domain.ResolveScreen(c.Snapshot())
}

// Bootstrap restores the persisted session and refreshes the profile. A failed
// refresh keeps the stored token and cached profile so routing can proceed
// offline.
func (c *SessionController) Bootstrap(ctx context.Context) error {
	log := c.logger.With("action", "bootstrap")

	c.setBootstrapping(true)
	defer c.setBootstrapping(false)

	token, err := c.readValue(ctx, ports.SessionKeyAccessToken)
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	profile := c.readCachedProfile(ctx, log)

	c.mu.Lock()
	c.session.AccessToken = token
	c.session.Profile = profile
	c.mu.Unlock()

	if token == "" {
		log.Debug("no stored access token")
		return nil
	}

	fresh, err := c.gateway.FetchProfile(ctx, token)
	if err != nil {
		log.Warn("profile refresh failed, keeping cached session", "error", err, "kind", domain.KindOf(err))
		return nil
	}

	c.replaceProfile(ctx, fresh)
	log.Info("session restored", "driver_id", fresh.ID, "stage", fresh.RegistrationStage)
	return nil
}

func (c *SessionController) SignUp(ctx context.Context, cmd SignUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	result, err := c.gateway.SignUp(ctx, ports.SignUpRequest{
		FullName:          strings.TrimSpace(cmd.FullName),
		MobileNumber:      cmd.MobileNumber,
		Password:          cmd.Password,
		RegistrationStage: domain.StageVerifyOTP,
	})
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}

	if err := c.establish(ctx, result); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}

	c.logger.Info("signed up", "action", "sign_up", "driver_id", result.Profile.ID)
	return nil
}

func (c *SessionController) SignIn(ctx context.Context, cmd SignInCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	result, err := c.gateway.SignIn(ctx, ports.Credentials{
		MobileNumber: cmd.MobileNumber,
		Password:     cmd.Password,
	})
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	if err := c.establish(ctx, result); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	c.logger.Info("signed in", "action", "sign_in", "driver_id", result.Profile.ID)
	return nil
}

func (c *SessionController) VerifyOTP(ctx context.Context, otp string) error {
	if err := domain.ValidateOTP(otp); err != nil {
		return err
	}

	token, profile, err := c.authenticated()
	if err != nil {
		return err
	}

	if profile == nil || strings.TrimSpace(profile.MobileNumber) == "" {
		return &domain.ValidationError{Field: "mobile number", Message: "No mobile number on file. Sign in again to receive a new OTP."}
	}

	fresh, err := c.gateway.VerifyOTP(ctx, token, ports.OTPRequest{
		MobileNumber:      profile.MobileNumber,
		OTP:               otp,
		RegistrationStage: domain.StageCompleteProfile,
	})
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}

	c.replaceProfile(ctx, fresh)
	return nil
}

// UpdateProfile sends a partial update and adopts the server's representation
// as is. Stage transitions are never applied locally.
func (c *SessionController) UpdateProfile(ctx context.Context, update ports.ProfileUpdate) error {
	token, _, err := c.authenticated()
	if err != nil {
		return err
	}

	fresh, err := c.gateway.UpdateDriverProfile(ctx, token, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	c.replaceProfile(ctx, fresh)
	return nil
}

func (c *SessionController) CompleteProfile(ctx context.Context, cmd CompleteProfileCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	experience := cmd.Experience
	return c.UpdateProfile(ctx, ports.ProfileUpdate{
		RegistrationStage: domain.StageProfilePicture,
		Gender:            cmd.Gender,
		City:              cmd.City,
		Age:               cmd.Age,
		Experience:        &experience,
		Skill:             cmd.Skill,
		Email:             strings.TrimSpace(cmd.Email),
	})
}

func (c *SessionController) SetProfilePicture(ctx context.Context, pictureRef string) error {
	if err := validateDocument("profile picture", pictureRef); err != nil {
		return err
	}

	return c.UpdateProfile(ctx, ports.ProfileUpdate{
		RegistrationStage: domain.StageDrivingLicense,
		ProfilePicture:    pictureRef,
	})
}

func (c *SessionController) AddDrivingLicense(ctx context.Context, licenseRef string) error {
	if err := validateDocument("driving license", licenseRef); err != nil {
		return err
	}

	return c.UpdateProfile(ctx, ports.ProfileUpdate{
		RegistrationStage: domain.StageSubmitted,
		DrivingLicense:    licenseRef,
	})
}

func (c *SessionController) EditName(ctx context.Context, fullName string) error {
	if err := domain.ValidateFullName(fullName); err != nil {
		return err
	}

	_, profile, err := c.authenticated()
	if err != nil {
		return err
	}

	update := ports.ProfileUpdate{FullName: strings.TrimSpace(fullName)}
	if profile != nil {
		update.DriverID = profile.ID
	}

	return c.UpdateProfile(ctx, update)
}

func (c *SessionController) SignOut(ctx context.Context) error {
	c.logger.Info("signing out", "action", "sign_out")
	return c.endSession(ctx)
}

// DeleteAccount removes the account remotely before ending the session. A
// rejected or failed call leaves the session untouched.
func (c *SessionController) DeleteAccount(ctx context.Context) error {
	token, _, err := c.authenticated()
	if err != nil {
		return err
	}

	if err := c.gateway.DeleteAccount(ctx, token); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	c.logger.Info("account deleted", "action", "delete_account")
	return c.endSession(ctx)
}

func (c *SessionController) endSession(ctx context.Context) error {
	c.mu.Lock()
	c.session.AccessToken = ""
	c.session.Profile = nil
	c.mu.Unlock()

	var clearErr error
	for _, key := range []string{ports.SessionKeyAccessToken, ports.SessionKeyProfile} {
		if err := c.store.Clear(ctx, key); err != nil {
			clearErr = errors.Join(clearErr, fmt.Errorf("clear %s: %w", key, err))
		}
	}

	var navErr error
	if c.navigator != nil {
		if err := c.navigator.Reset(ctx, domain.RouteSignIn); err != nil {
			navErr = fmt.Errorf("reset navigation: %w", err)
		}
	}

	return errors.Join(clearErr, navErr)
}

func (c *SessionController) establish(ctx context.Context, result ports.AuthResult) error {
	if strings.TrimSpace(result.AccessToken) == "" {
		return &domain.RemoteError{Op: "authenticate", Message: "server returned no access token"}
	}

	if err := c.store.Set(ctx, ports.SessionKeyAccessToken, result.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	c.mu.Lock()
	c.session.AccessToken = result.AccessToken
	c.mu.Unlock()

	c.replaceProfile(ctx, result.Profile)
	return nil
}

func (c *SessionController) replaceProfile(ctx context.Context, profile domain.UserProfile) {
	c.mu.Lock()
	c.session.Profile = &profile
	c.mu.Unlock()

	encoded, err := json.Marshal(profile)
	if err != nil {
		c.logger.Warn("encode profile cache", "error", err)
		return
	}
	if err := c.store.Set(ctx, ports.SessionKeyProfile, string(encoded)); err != nil {
		c.logger.Warn("store profile cache", "error", err)
	}
}

func (c *SessionController) authenticated() (string, *domain.UserProfile, error) {
	session := c.Snapshot()
	if !session.Authenticated() {
		return "", nil, domain.ErrNotAuthenticated
	}
	return session.AccessToken, session.Profile, nil
}

func (c *SessionController) setBootstrapping(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Bootstrapping = active
}

func (c *SessionController) readValue(ctx context.Context, key string) (string, error) {
	value, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (c *SessionController) readCachedProfile(ctx context.Context, log *slog.Logger) *domain.UserProfile {
	raw, err := c.readValue(ctx, ports.SessionKeyProfile)
	if err != nil {
		log.Warn("read cached profile", "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn("discarding unreadable cached profile", "error", err)
		return nil
	}
	return &profile
}
