package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventCategory is a closed enumeration of event kinds.
type EventCategory string

const (
	CategoryConference EventCategory = "conference"
	CategoryWorkshop   EventCategory = "workshop"
	CategoryWebinar    EventCategory = "webinar"
	CategoryMeetup     EventCategory = "meetup"
	CategoryParty      EventCategory = "party"
	CategorySport      EventCategory = "sport"
	CategoryOther      EventCategory = "other"
)

// ParseEventCategory validates a raw category string against the known set.
func ParseEventCategory(s string) (EventCategory, error) {
	switch EventCategory(s) {
	case CategoryConference, CategoryWorkshop, CategoryWebinar,
		CategoryMeetup, CategoryParty, CategorySport, CategoryOther:
		return EventCategory(s), nil
	default:
		return "", fmt.Errorf("unknown event category %q", s)
	}
}

type Event struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	Location        string        `json:"location"`
	Category        EventCategory `json:"category"`
	MaxParticipants int           `json:"max_participants"`
	CreatorID       uuid.UUID     `json:"creator_id"`
	Image           []byte        `json:"-"` // served by the image endpoint, not embedded in listings
	CreatedAt       time.Time     `json:"created_at"`
}

// EventFilter holds the optional search criteria for event lookups.
type EventFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Location   string
	Category   EventCategory
	SearchTerm string
}
