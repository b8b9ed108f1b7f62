package configs

import "time"

// Dispatch configures the offer dispatch pass. OverbookingRate is the
// fraction of extra invitations sent beyond a campaign's target count.
// RateLimitWindow is the cool-down between repeat offers to the same
// creator. NotifyPerSecond and NotifyBurst pace the outbound notification
// fan-out.
type Dispatch struct {
	OverbookingRate float64       `env:"OVERBOOKING_RATE" envDefault:"0.25"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
	NotifyPerSecond float64       `env:"NOTIFY_PER_SECOND" envDefault:"10"`
	NotifyBurst     int           `env:"NOTIFY_BURST" envDefault:"5"`
}
