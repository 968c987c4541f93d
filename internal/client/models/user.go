// Package models defines the wire types exchanged with the CommHub API.
package models

// UserRef is the compact author/organizer reference embedded in domain objects.
type UserRef struct {
	PublicID string `json:"public_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the editable part of a user account.
type Profile struct {
	ID           int64             `json:"id"`
	PublicID     string            `json:"public_id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	FullName     string            `json:"full_name"`
	Bio          string            `json:"bio"`
	ProfileImage string            `json:"profile_image"`
	Location     string            `json:"location"`
	Website      string            `json:"website"`
	SocialLinks  map[string]string `json:"social_links"`
	PhoneNumber  string            `json:"phone_number"`
	Tags         string            `json:"tags"`
	DateOfBirth  string            `json:"date_of_birth"`
	Role         string            `json:"role"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// UserProfile combines account identity and profile data.
type UserProfile struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	PublicID string  `json:"public_id"`
	Role     string  `json:"role"`
	Profile  Profile `json:"profile"`
}

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string              `json:"username,omitempty"`
	Profile  *ProfileFieldsUpdate `json:"profile,omitempty"`
}

type ProfileFieldsUpdate struct {
	FirstName   *string           `json:"first_name,omitempty"`
	LastName    *string           `json:"last_name,omitempty"`
	Bio         *string           `json:"bio,omitempty"`
	Location    *string           `json:"location,omitempty"`
	Website     *string           `json:"website,omitempty"`
	PhoneNumber *string           `json:"phone_number,omitempty"`
	DateOfBirth *string           `json:"date_of_birth,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	Tags        *string           `json:"tags,omitempty"`
}
