package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"creatormarket/internal/core/domain"
)

type stubLog struct {
	offers []domain.Offer
	err    error

	gotStatuses []string
	gotSince    time.Time
}

func (s *stubLog) FindRecent(_ context.Context, _, _ uuid.UUID, statuses []string, since time.Time) ([]domain.Offer, error) {
	s.gotStatuses = statuses
	s.gotSince = since
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Offer
	for _, o := range s.offers {
		if !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAllowedRespectsWindow(t *testing.T) {
	adv, cr := uuid.New(), uuid.New()
	sentAt := time.Now()
	log := &stubLog{offers: []domain.Offer{{
		AdvertiserID: adv,
		CreatorID:    cr,
		Status:       domain.OfferStatusPending,
		CreatedAt:    sentAt,
	}}}

	svc := NewService(log, time.Hour, discard())

	// 30 minutes after the open offer: blocked
	svc.now = func() time.Time { return sentAt.Add(30 * time.Minute) }
	assert.False(t, svc.Allowed(context.Background(), adv, cr))

	// 61 minutes after: the window has passed
	svc.now = func() time.Time { return sentAt.Add(61 * time.Minute) }
	assert.True(t, svc.Allowed(context.Background(), adv, cr))

	assert.Equal(t, domain.OpenOfferStatuses, log.gotStatuses)
}

func TestAllowedWithNoHistory(t *testing.T) {
	svc := NewService(&stubLog{}, time.Hour, discard())
	assert.True(t, svc.Allowed(context.Background(), uuid.New(), uuid.New()))
}

func TestAllowedFailsOpenOnLookupError(t *testing.T) {
	log := &stubLog{err: errors.New("connection reset")}
	svc := NewService(log, time.Hour, discard())
	assert.True(t, svc.Allowed(context.Background(), uuid.New(), uuid.New()))
}

func TestNewServiceDefaultsWindow(t *testing.T) {
	svc := NewService(&stubLog{}, 0, discard())
	assert.Equal(t, DefaultWindow, svc.Window())
}
