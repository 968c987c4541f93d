package models

// Event statuses as reported by the API.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event is a community event.
type Event struct {
	PublicID             string  `json:"public_id"`
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Date                 string  `json:"date"`
	Time                 string  `json:"time"`
	EndDate              string  `json:"end_date,omitempty"`
	Location             string  `json:"location"`
	Type                 string  `json:"type"`
	Image                string  `json:"image,omitempty"`
	Organizer            UserRef `json:"organizer"`
	MaxAttendees         int     `json:"max_attendees,omitempty"`
	RegistrationRequired bool    `json:"registration_required"`
	RegistrationDeadline string  `json:"registration_deadline,omitempty"`
	IsFeatured           bool    `json:"is_featured"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
	RegistrationsCount   int     `json:"registrations_count"`
}

// Speaker presents at an event.
type Speaker struct {
	PublicID    string `json:"public_id,omitempty"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Bio         string `json:"bio,omitempty"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AgendaItem is one slot of an event agenda.
type AgendaItem struct {
	PublicID    string   `json:"public_id,omitempty"`
	Time        string   `json:"time"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Speaker     *Speaker `json:"speaker,omitempty"`
}

// Registration records an attendee signup.
type Registration struct {
	PublicID         string  `json:"public_id"`
	Attendee         UserRef `json:"attendee"`
	RegistrationDate string  `json:"registration_date"`
	Attended         bool    `json:"attended"`
}
