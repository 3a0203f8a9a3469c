package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

var _ ports.Gateway = (*mockGateway)(nil)

func (m *mockGateway) SignUp(ctx context.Context, req ports.SignUpRequest) (ports.AuthResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.AuthResult), args.Error(1)
}

func (m *mockGateway) SignIn(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(ports.AuthResult), args.Error(1)
}

func (m *mockGateway) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *mockGateway) VerifyOTP(ctx context.Context, token string, req ports.OTPRequest) (domain.UserProfile, error) {
	args := m.Called(ctx, token, req)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *mockGateway) UpdateDriverProfile(ctx context.Context, token string, update ports.ProfileUpdate) (domain.UserProfile, error) {
	args := m.Called(ctx, token, update)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *mockGateway) DeleteAccount(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockGateway) FetchNotifications(ctx context.Context, token string, pageSize, page int) (ports.NotificationPage, error) {
	args := m.Called(ctx, token, pageSize, page)
	return args.Get(0).(ports.NotificationPage), args.Error(1)
}

func (m *mockGateway) FetchRideHistory(ctx context.Context, token string, pageSize, page int) (ports.RideHistoryPage, error) {
	args := m.Called(ctx, token, pageSize, page)
	return args.Get(0).(ports.RideHistoryPage), args.Error(1)
}

type memoryStore struct {
	mu       sync.Mutex
	values   map[string]string
	getErr   error
	setErr   error
	clearErr error
}

var _ ports.SessionStore = (*memoryStore)(nil)

func newMemoryStore(values map[string]string) *memoryStore {
	if values == nil {
		values = map[string]string{}
	}
	return &memoryStore{values: values}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", domain.ErrSessionKeyNotFound
	}
	return value, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *memoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.values, key)
	return nil
}

type recordingNavigator struct {
	resets       []domain.Route
	destinations []domain.Destination
	err          error
}

func (n *recordingNavigator) Reset(_ context.Context, route domain.Route) error {
	n.resets = append(n.resets, route)
	return n.err
}

func (n *recordingNavigator) Navigate(_ context.Context, destination domain.Destination) error {
	n.destinations = append(n.destinations, destination)
	return n.err
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func anyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}
