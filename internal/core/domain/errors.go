package domain

import "errors"

var (
	ErrInvalidCampaign       = errors.New("invalid campaign")
	ErrInvalidListing        = errors.New("invalid listing")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrListingNotFound       = errors.New("listing not found")
	ErrNotCampaignOwner      = errors.New("requester is not the campaign owner")
	ErrInvalidCampaignStatus = errors.New("invalid campaign status transition")
)
