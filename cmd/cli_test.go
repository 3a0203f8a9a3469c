package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
	"github.com/bnema/driver-partner-cli/internal/version"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMobile   = "9876543210"
	testPassword = "secret1"
)

// fakeBackend is an in-memory driver API speaking the {success, data, message}
// envelope.
type fakeBackend struct {
	t     *testing.T
	token string

	mu            sync.Mutex
	delay         time.Duration
	driver        domain.UserProfile
	deleted       bool
	calls         int
	lastUpdate    ports.ProfileUpdate
	notifications []domain.Notification
	rides         []domain.RideRecord
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	return &fakeBackend{
		t:     t,
		token: fakeJWT(fmt.Sprintf(`{"sub":"drv-1","exp":%d}`, time.Now().Add(72*time.Hour).Unix())),
		driver: domain.UserProfile{
			ID:           "drv-1",
			FullName:     "Asha Patil",
			MobileNumber: testMobile,
		},
	}
}

func (b *fakeBackend) start() string {
	server := httptest.NewServer(b.router())
	b.t.Cleanup(server.Close)
	return server.URL + "/api/"
}

func (b *fakeBackend) router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/driver").Subrouter()
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.calls++
			delay := b.delay
			b.mu.Unlock()
			time.Sleep(delay)
			next.ServeHTTP(w, r)
		})
	})

	api.HandleFunc("/signin", b.handleSignIn).Methods(http.MethodPost)
	api.HandleFunc("/signup", b.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/profile", b.authorized(b.handleProfile)).Methods(http.MethodGet)
	api.HandleFunc("/verifyotp", b.authorized(b.handleVerifyOTP)).Methods(http.MethodPost)
	api.HandleFunc("/update", b.authorized(b.handleUpdate)).Methods(http.MethodPost)
	api.HandleFunc("/deleteAccount", b.authorized(b.handleDelete)).Methods(http.MethodPost)
	api.HandleFunc("/notifications", b.authorized(b.handleNotifications)).Methods(http.MethodGet)
	api.HandleFunc("/rides/history", b.authorized(b.handleRides)).Methods(http.MethodGet)

	return router
}

func (b *fakeBackend) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			b.reject(w, http.StatusUnauthorized, "Session expired")
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var creds ports.Credentials
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&creds))

	if creds.MobileNumber != testMobile || creds.Password != testPassword {
		b.reject(w, http.StatusUnauthorized, "Invalid mobile number or password")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ok(w, map[string]any{"token": b.token, "driver": b.driver})
}

func (b *fakeBackend) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req ports.SignUpRequest
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.driver = domain.UserProfile{
		ID:                "drv-2",
		FullName:          req.FullName,
		MobileNumber:      req.MobileNumber,
		RegistrationStage: req.RegistrationStage,
	}
	b.ok(w, map[string]any{"token": b.token, "driver": b.driver})
}

func (b *fakeBackend) handleProfile(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ok(w, b.driver)
}

func (b *fakeBackend) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req ports.OTPRequest
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&req))

	if req.OTP != "1234" {
		b.reject(w, http.StatusBadRequest, "Invalid OTP")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.driver.IsMobileVerified = true
	b.driver.RegistrationStage = req.RegistrationStage
	b.ok(w, b.driver)
}

func (b *fakeBackend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var update ports.ProfileUpdate
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&update))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastUpdate = update
	if update.RegistrationStage != "" {
		b.driver.RegistrationStage = update.RegistrationStage
	}
	if update.FullName != "" {
		b.driver.FullName = update.FullName
	}
	if update.City != "" {
		b.driver.City = update.City
	}
	if update.Age != 0 {
		b.driver.Age = update.Age
	}
	if update.ProfilePicture != "" {
		b.driver.ProfilePicture = update.ProfilePicture
	}
	if update.DrivingLicense != "" {
		b.driver.DrivingLicense = update.DrivingLicense
	}
	b.ok(w, b.driver)
}

func (b *fakeBackend) handleDelete(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = true
	b.ok(w, nil)
}

func (b *fakeBackend) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit, page := pageParams(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	items := pageOf(b.notifications, limit, page)
	b.ok(w, map[string]any{
		"notifications": items,
		"hasMore":       page*limit < len(b.notifications),
	})
}

func (b *fakeBackend) handleRides(w http.ResponseWriter, r *http.Request) {
	limit, page := pageParams(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	totalPages := (len(b.rides) + limit - 1) / limit
	b.ok(w, map[string]any{
		"history":    pageOf(b.rides, limit, page),
		"pagination": map[string]any{"totalPages": totalPages},
	})
}

func (b *fakeBackend) ok(w http.ResponseWriter, data any) {
	writeJSON(b.t, w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (b *fakeBackend) reject(w http.ResponseWriter, status int, message string) {
	writeJSON(b.t, w, status, map[string]any{"success": false, "message": message})
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func pageParams(r *http.Request) (int, int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	return limit, page
}

func pageOf[T any](items []T, limit, page int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func notificationsFixture(n int, now time.Time) []domain.Notification {
	items := make([]domain.Notification, n)
	for i := range items {
		items[i] = domain.Notification{
			ID:        fmt.Sprintf("n-%02d", i),
			Title:     fmt.Sprintf("Notification %d", i),
			Category:  domain.CategoryPayment,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		}
	}
	return items
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), newFakeBackend(t).start(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestVersionJSONIncludesPlatform(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), newFakeBackend(t).start(), "version", "--json")
	require.NoError(t, err)

	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Version, info.Version)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Go)
}

func TestRedisBackendIsNotDialledUntilUsed(t *testing.T) {
	t.Setenv("DP_STORE_BACKEND", "redis")
	t.Setenv("DP_STORE_REDIS_ADDR", "127.0.0.1:1")

	stdout, _, err := executeCLIWithEnv(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestAppCloseReleasesStoreOnce(t *testing.T) {
	closer := &countingCloser{}
	a := &app{closers: []io.Closer{closer}}

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	assert.Equal(t, 1, closer.calls)
}

type countingCloser struct {
	calls int
}

func (c *countingCloser) Close() error {
	c.calls++
	return nil
}

func TestStatusWithoutSessionShowsSignInHint(t *testing.T) {
	backend := newFakeBackend(t)

	stdout, _, err := executeCLI(t, t.TempDir(), backend.start(), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "screen: onboarding/home")
	assert.Contains(t, stdout, "Not signed in")
	assert.Zero(t, backend.callCount())
}

func TestSignInThenStatusShowsDriver(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	stdout, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Asha Patil")
	assert.Contains(t, stdout, "next: home")

	stdout, _, err = executeCLI(t, home, baseURL, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "screen: main")
	assert.Contains(t, stdout, "Asha Patil (drv-1)")
	assert.Contains(t, stdout, "onboarding: complete")
	assert.Contains(t, stdout, "token: expires in")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "status", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Subject\": \"drv-1\"")
	assert.Contains(t, stdout, "\"fullName\": \"Asha Patil\"")
}

func TestSignInRejectedShowsServerMessage(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", "wrong-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	assert.Equal(t, "Invalid mobile number or password", describeError(err))

	stdout, _, err := executeCLI(t, home, baseURL, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestSignInValidationNeverReachesServer(t *testing.T) {
	backend := newFakeBackend(t)

	_, _, err := executeCLI(t, t.TempDir(), backend.start(), "signin", "--mobile", "12345", "--password", testPassword)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Zero(t, backend.callCount())
}

func TestSignInRequiresPasswordFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), newFakeBackend(t).start(), "signin", "--mobile", testMobile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"password\" not set")
}

func TestOnboardingFunnelAdvancesWithServerStage(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	stdout, _, err := executeCLI(t, home, baseURL, "signup", "--name", "Ravi Kumar", "--mobile", "9123456780", "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed up as Ravi Kumar")
	assert.Contains(t, stdout, "next: verify-otp")

	_, _, err = executeCLI(t, home, baseURL, "verify-otp", "--otp", "9999")
	require.Error(t, err)
	assert.Equal(t, "Invalid OTP", describeError(err))

	stdout, _, err = executeCLI(t, home, baseURL, "verify-otp", "--otp", "1234")
	require.NoError(t, err)
	assert.Contains(t, stdout, "next: complete-profile")

	stdout, _, err = executeCLI(t, home, baseURL,
		"profile", "complete",
		"--age", "30",
		"--experience", "5",
		"--gender", "male",
		"--city", "Pune",
		"--skill", "manual",
		"--accept-terms",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "next: set-profile-pic")

	stdout, _, err = executeCLI(t, home, baseURL, "profile", "picture", "file:///tmp/me.jpg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "next: add-driving-license")

	stdout, _, err = executeCLI(t, home, baseURL, "profile", "license", "file:///tmp/license.jpg")
	require.NoError(t, err)
	assert.Contains(t, stdout, "next: submit-application")

	stdout, _, err = executeCLI(t, home, baseURL, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "screen: onboarding/submit-application")
	assert.Contains(t, stdout, "4/5, next: submit application")
}

func TestProfileCompleteValidatesBeforeCalling(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)
	before := backend.callCount()

	_, _, err = executeCLI(t, home, baseURL,
		"profile", "complete",
		"--age", "17",
		"--gender", "female",
		"--city", "Pune",
		"--skill", "automatic",
		"--accept-terms",
	)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	// only the bootstrap profile refresh reached the server
	assert.Equal(t, before+1, backend.callCount())
}

func TestProfilePictureRequiresImage(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, baseURL, "profile", "picture")
	require.Error(t, err)
	assert.Equal(t, "Please select an image before continuing.", describeError(err))
}

func TestProfileEditSendsDriverID(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "profile", "edit", "--name", "Asha P")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Name updated as Asha P")

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, domain.DriverID("drv-1"), backend.lastUpdate.DriverID)
	assert.Equal(t, "Asha P", backend.lastUpdate.FullName)
}

func TestProfileShowJSON(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "profile", "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, _, err = executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "profile", "show", "--json")
	require.NoError(t, err)

	var profile domain.UserProfile
	require.NoError(t, json.Unmarshal([]byte(stdout), &profile))
	assert.Equal(t, domain.DriverID("drv-1"), profile.ID)
	assert.Equal(t, testMobile, profile.MobileNumber)
}

func TestSignOutForgetsSession(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "signout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")
	assert.Contains(t, stdout, "next: sign-in")

	stdout, _, err = executeCLI(t, home, baseURL, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestAccountDeleteRequiresConfirmation(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "account", "delete")
	require.ErrorIs(t, err, errDeleteNotConfirmed)
	assert.Zero(t, backend.callCount())
}

func TestAccountDeleteEndsSession(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "account", "delete", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Account deleted")

	backend.mu.Lock()
	assert.True(t, backend.deleted)
	backend.mu.Unlock()

	stdout, _, err = executeCLI(t, home, baseURL, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestNotificationsRequireSignIn(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), newFakeBackend(t).start(), "notifications")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, "Please sign in to continue.", describeError(err))
}

func TestNotificationsPagesUntilExhausted(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	backend.notifications = notificationsFixture(12, time.Now())
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "notifications", "--pages", "5", "--json")
	require.NoError(t, err)

	var result feedJSON[domain.Notification]
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Len(t, result.Items, 12)
	assert.True(t, result.Exhausted)
	assert.Equal(t, 3, result.NextPage)
	assert.Equal(t, "n-00", result.Items[0].ID)
}

func TestNotificationsFirstPageOnly(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	backend.notifications = notificationsFixture(12, time.Now())
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "notifications", "--json")
	require.NoError(t, err)

	var result feedJSON[domain.Notification]
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Len(t, result.Items, 10)
	assert.False(t, result.Exhausted)
	assert.Equal(t, 2, result.NextPage)
}

func TestNotificationsEmptyShowsWelcome(t *testing.T) {
	home := t.TempDir()
	baseURL := newFakeBackend(t).start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "notifications")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Notifications")
	assert.Contains(t, stdout, "Welcome!")
}

func TestNotificationsShowFetchingSpinner(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	backend.mu.Lock()
	backend.delay = 200 * time.Millisecond
	backend.mu.Unlock()
	_, stderr, err := executeCLI(t, home, baseURL, "notifications")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Fetching Notifications")
}

func TestRidesRenderGroupedHistory(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	now := time.Now()
	backend.rides = []domain.RideRecord{
		{ID: "r-1", RideID: "RIDE-1", Status: domain.RideCompleted, Origin: "Koregaon Park", Destination: "Hinjewadi", RideStartTime: now.Add(-48 * time.Hour)},
		{ID: "r-2", RideID: "RIDE-2", Status: domain.RideCancelled, Origin: "Baner", Destination: "Aundh", RideStartTime: now.Add(-72 * time.Hour)},
	}
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "rides")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ride history")
	assert.Contains(t, stdout, "Earlier")
	assert.Contains(t, stdout, "[Completed] Koregaon Park -> Hinjewadi")
	assert.Contains(t, stdout, "[Cancelled] Baner -> Aundh")
}

func TestRideTrackWithoutOngoingRide(t *testing.T) {
	home := t.TempDir()
	backend := newFakeBackend(t)
	backend.rides = []domain.RideRecord{
		{ID: "r-1", RideID: "RIDE-1", Status: domain.RideCompleted},
	}
	baseURL := backend.start()

	_, _, err := executeCLI(t, home, baseURL, "signin", "--mobile", testMobile, "--password", testPassword)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, baseURL, "ride", "track")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No ongoing ride")

	stdout, _, err = executeCLI(t, home, baseURL, "ride", "track", "--ride", "RIDE-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ride RIDE-1 is Completed")
}

func TestPushHandleRoutesNewUserSignup(t *testing.T) {
	baseURL := newFakeBackend(t).start()

	stdout, _, err := executeCLI(t, t.TempDir(), baseURL, "push", "handle", "--payload", `{"type":"NEW_USER_SIGNUP","userId":"u-9"}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "open: requested-users")

	stdout, _, err = executeCLI(t, t.TempDir(), baseURL, "push", "handle", "--payload", `{"type":"PROMO"}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ignored push type \"PROMO\"")

	_, _, err = executeCLI(t, t.TempDir(), baseURL, "push", "handle", "--payload", "not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode push payload")
}

func TestInvalidConfigSurfacesOnEveryCommand(t *testing.T) {
	t.Setenv("DP_STORE_BACKEND", "carrier-pigeon")

	_, _, err := executeCLIWithEnv(t, t.TempDir(), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend \"carrier-pigeon\"")
}

func TestDescribeErrorAddsTransportDetail(t *testing.T) {
	err := &domain.TransportError{Op: "sign in", Err: fmt.Errorf("connection refused")}

	assert.Equal(t, "Something went wrong. Please check your connection and try again. (sign in: connection refused)", describeError(err))
	assert.Equal(t, "boom", describeError(fmt.Errorf("boom")))
}

func executeCLI(t *testing.T, home string, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DP_API_BASE_URL", baseURL)
	t.Setenv("DP_STORE_BACKEND", "file")

	return executeCLIWithEnv(t, home, args...)
}

func executeCLIWithEnv(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func fakeJWT(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}
