package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatormarket/internal/core/domain"
	"creatormarket/internal/core/port"
)

// stubUseCase implements port.CampaignUseCase with overridable hooks.
type stubUseCase struct {
	createCampaign func(ctx context.Context, c *domain.Campaign) error
	getCampaign    func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	launch         func(ctx context.Context, campaignID, requesterID uuid.UUID) (*port.DispatchSummary, error)
	pause          func(ctx context.Context, campaignID, requesterID uuid.UUID) error
	preview        func(ctx context.Context, campaignID uuid.UUID) ([]port.PreviewCandidate, error)
	stats          func(ctx context.Context, campaignID uuid.UUID) (*port.CampaignStats, error)
}

func (s *stubUseCase) CreateCampaign(ctx context.Context, c *domain.Campaign) error {
	if s.createCampaign != nil {
		return s.createCampaign(ctx, c)
	}
	c.ID = uuid.New()
	c.Status = domain.CampaignStatusDraft
	return nil
}

func (s *stubUseCase) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	if s.getCampaign != nil {
		return s.getCampaign(ctx, id)
	}
	return nil, domain.ErrCampaignNotFound
}

func (s *stubUseCase) ListCampaigns(context.Context, uuid.UUID) ([]domain.Campaign, error) {
	return nil, nil
}

func (s *stubUseCase) UpdateCampaign(context.Context, uuid.UUID, *domain.Campaign) error {
	return nil
}

func (s *stubUseCase) Launch(ctx context.Context, campaignID, requesterID uuid.UUID) (*port.DispatchSummary, error) {
	if s.launch != nil {
		return s.launch(ctx, campaignID, requesterID)
	}
	return &port.DispatchSummary{}, nil
}

func (s *stubUseCase) Pause(ctx context.Context, campaignID, requesterID uuid.UUID) error {
	if s.pause != nil {
		return s.pause(ctx, campaignID, requesterID)
	}
	return nil
}

func (s *stubUseCase) Resume(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (s *stubUseCase) PreviewMatches(ctx context.Context, campaignID uuid.UUID) ([]port.PreviewCandidate, error) {
	if s.preview != nil {
		return s.preview(ctx, campaignID)
	}
	return nil, nil
}

func (s *stubUseCase) CreateListing(context.Context, *domain.CandidateListing) error { return nil }

func (s *stubUseCase) ListListings(context.Context, uuid.UUID) ([]domain.CandidateListing, error) {
	return nil, nil
}

func (s *stubUseCase) CampaignOffers(context.Context, uuid.UUID) ([]domain.Offer, error) {
	return nil, nil
}

func (s *stubUseCase) CampaignStats(ctx context.Context, campaignID uuid.UUID) (*port.CampaignStats, error) {
	if s.stats != nil {
		return s.stats(ctx, campaignID)
	}
	return &port.CampaignStats{Offers: map[string]int64{}}, nil
}

func newTestHandler(svc port.CampaignUseCase) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleLaunch(t *testing.T) {
	campaignID := uuid.New()
	requester := uuid.New()
	svc := &stubUseCase{
		launch: func(_ context.Context, cid, rid uuid.UUID) (*port.DispatchSummary, error) {
			assert.Equal(t, campaignID, cid)
			assert.Equal(t, requester, rid)
			return &port.DispatchSummary{Sent: 5, Skipped: 1, Failed: 0}, nil
		},
	}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.String()+"/launch", nil)
	req.Header.Set(requesterHeader, requester.String())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary port.DispatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, port.DispatchSummary{Sent: 5, Skipped: 1, Failed: 0}, summary)
}

func TestHandleLaunchErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrCampaignNotFound, http.StatusNotFound},
		{"not owner", domain.ErrNotCampaignOwner, http.StatusForbidden},
		{"bad status", domain.ErrInvalidCampaignStatus, http.StatusConflict},
		{"invalid campaign", domain.ErrInvalidCampaign, http.StatusBadRequest},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubUseCase{
				launch: func(context.Context, uuid.UUID, uuid.UUID) (*port.DispatchSummary, error) {
					return nil, tt.err
				},
			}
			h := newTestHandler(svc)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+uuid.NewString()+"/launch", nil)
			req.Header.Set(requesterHeader, uuid.NewString())
			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleLaunchRequiresRequesterHeader(t *testing.T) {
	h := newTestHandler(&stubUseCase{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+uuid.NewString()+"/launch", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleLaunchInvalidID(t *testing.T) {
	h := newTestHandler(&stubUseCase{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/not-a-uuid/launch", nil)
	req.Header.Set(requesterHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateCampaign(t *testing.T) {
	h := newTestHandler(&stubUseCase{})
	body, err := json.Marshal(campaignRequest{
		Title:        "Launch week",
		BudgetMin:    1000,
		BudgetMax:    5000,
		AudienceMin:  100,
		AudienceMax:  10000,
		TargetCount:  3,
		ContentTypes: []string{"video"},
		Platforms:    []string{"tiktok"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/", bytes.NewReader(body))
	req.Header.Set(requesterHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp campaignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Launch week", resp.Title)
	assert.Equal(t, domain.CampaignStatusDraft, resp.Status)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestHandleCreateCampaignBadJSON(t *testing.T) {
	h := newTestHandler(&stubUseCase{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/", bytes.NewReader([]byte("{")))
	req.Header.Set(requesterHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePreviewNeedsNoAuth(t *testing.T) {
	listingID := uuid.New()
	svc := &stubUseCase{
		preview: func(context.Context, uuid.UUID) ([]port.PreviewCandidate, error) {
			return []port.PreviewCandidate{{ListingID: listingID, Platform: "instagram", FollowerCount: 5000}}, nil
		},
	}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+uuid.NewString()+"/preview", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var preview []port.PreviewCandidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	require.Len(t, preview, 1)
	assert.Equal(t, listingID, preview[0].ListingID)
}

func TestHandlePause(t *testing.T) {
	h := newTestHandler(&stubUseCase{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+uuid.NewString()+"/pause", nil)
	req.Header.Set(requesterHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleCampaignStats(t *testing.T) {
	svc := &stubUseCase{
		stats: func(context.Context, uuid.UUID) (*port.CampaignStats, error) {
			return &port.CampaignStats{Offers: map[string]int64{"pending": 3}, Total: 3}, nil
		},
	}
	h := newTestHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+uuid.NewString()+"/stats", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats port.CampaignStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.Offers["pending"])
}
