package models

// Project moderation statuses.
const (
	ProjectStatusPending  = "pending"
	ProjectStatusApproved = "approved"
	ProjectStatusRejected = "rejected"
)

// KeyFeature is a highlighted capability of a project.
type KeyFeature struct {
	PublicID    string `json:"public_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Project is a community-submitted project.
type Project struct {
	PublicID     string       `json:"public_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Image        string       `json:"image,omitempty"`
	Tags         []string     `json:"tags"`
	Technologies []string     `json:"technologies"`
	Tools        []string     `json:"tools"`
	Industry     string       `json:"industry"`
	Creator      UserRef      `json:"creator"`
	IsReviewed   bool         `json:"is_reviewed"`
	IsFeatured   bool         `json:"is_featured"`
	Status       string       `json:"status"`
	Stars        int          `json:"stars"`
	Forks        int          `json:"forks"`
	Users        int          `json:"users"`
	Views        int          `json:"views"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	KeyFeatures  []KeyFeature `json:"key_features"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Industry     string
	Technologies []string
	Tools        []string
	IsReviewed   *bool
}

// ProjectCreate is the payload for submitting a project.
type ProjectCreate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image,omitempty"`
	Tags         []string `json:"tags"`
	Technologies []string `json:"technologies"`
	Tools        []string `json:"tools"`
	Industry     string   `json:"industry"`
}

// ProjectUpdate is a partial project edit.
type ProjectUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Tools        []string `json:"tools,omitempty"`
	Industry     *string  `json:"industry,omitempty"`
}

// ProjectModeration is the admin review payload.
type ProjectModeration struct {
	IsReviewed *bool `json:"is_reviewed,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`
}
