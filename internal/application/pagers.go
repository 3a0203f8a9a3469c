package application

import (
	"context"

	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/bnema/driver-partner-cli/internal/ports"
)

type TokenSource interface {
	AccessToken() string
}

type NotificationPager struct {
	gateway ports.Gateway
	tokens  TokenSource
}

var _ Pager[domain.Notification] = NotificationPager{}

func NewNotificationPager(gateway ports.Gateway, tokens TokenSource) NotificationPager {
	return NotificationPager{gateway: gateway, tokens: tokens}
}

func (p NotificationPager) FetchPage(ctx context.Context, pageSize, page int) (Page[domain.Notification], error) {
	token := p.tokens.AccessToken()
	if token == "" {
		return Page[domain.Notification]{}, domain.ErrNotAuthenticated
	}

	result, err := p.gateway.FetchNotifications(ctx, token, pageSize, page)
	if err != nil {
		return Page[domain.Notification]{}, err
	}

	return Page[domain.Notification]{Items: result.Notifications, HasMore: result.HasMore}, nil
}

// RideHistoryPager derives hasMore from the total page count, since the ride
// history endpoint does not report it.
type RideHistoryPager struct {
	gateway ports.Gateway
	tokens  TokenSource
}

var _ Pager[domain.RideRecord] = RideHistoryPager{}

func NewRideHistoryPager(gateway ports.Gateway, tokens TokenSource) RideHistoryPager {
	return RideHistoryPager{gateway: gateway, tokens: tokens}
}

func (p RideHistoryPager) FetchPage(ctx context.Context, pageSize, page int) (Page[domain.RideRecord], error) {
	token := p.tokens.AccessToken()
	if token == "" {
		return Page[domain.RideRecord]{}, domain.ErrNotAuthenticated
	}

	result, err := p.gateway.FetchRideHistory(ctx, token, pageSize, page)
	if err != nil {
		return Page[domain.RideRecord]{}, err
	}

	return Page[domain.RideRecord]{
		Items:   result.History,
		HasMore: page+1 <= result.Pagination.TotalPages,
	}, nil
}
