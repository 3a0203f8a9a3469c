package application

import "time"

type Bucket string

const (
	BucketToday     Bucket = "Today"
	BucketYesterday Bucket = "Yesterday"
	BucketEarlier   Bucket = "Earlier"
)

type BucketLayout struct {
	Buckets []Bucket
	// Undated receives items without a timestamp.
	Undated Bucket
}

var (
	NotificationBuckets = BucketLayout{
		Buckets: []Bucket{BucketToday, BucketYesterday, BucketEarlier},
		Undated: BucketToday,
	}
	RideBuckets = BucketLayout{
		Buckets: []Bucket{BucketToday, BucketEarlier},
		Undated: BucketEarlier,
	}
)

type Group[T any] struct {
	Title Bucket
	Items []T
}

// GroupByDay buckets items by calendar day in now's location. Bucket order
// follows the layout and empty buckets are omitted.
func GroupByDay[T any](items []T, now time.Time, timestamp func(T) time.Time, layout BucketLayout) []Group[T] {
	loc := now.Location()
	today := startOfDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)

	hasYesterday := false
	for _, bucket := range layout.Buckets {
		if bucket == BucketYesterday {
			hasYesterday = true
		}
	}

	grouped := make(map[Bucket][]T, len(layout.Buckets))
	for _, item := range items {
		at := timestamp(item)
		bucket := BucketEarlier
		switch {
		case at.IsZero():
			bucket = layout.Undated
		case startOfDay(at, loc).Equal(today):
			bucket = BucketToday
		case hasYesterday && startOfDay(at, loc).Equal(yesterday):
			bucket = BucketYesterday
		}
		grouped[bucket] = append(grouped[bucket], item)
	}

	groups := make([]Group[T], 0, len(layout.Buckets))
	for _, bucket := range layout.Buckets {
		if len(grouped[bucket]) == 0 {
			continue
		}
		groups = append(groups, Group[T]{Title: bucket, Items: grouped[bucket]})
	}

	return groups
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
