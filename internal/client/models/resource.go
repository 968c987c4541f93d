package models

// Resource is a curated external resource (article, tool, posting).
type Resource struct {
	PublicID      string   `json:"public_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Content       string   `json:"content,omitempty"`
	URL           string   `json:"url"`
	ImageURL      string   `json:"image_url,omitempty"`
	Source        string   `json:"source"`
	SourceName    string   `json:"source_name"`
	Region        string   `json:"region"`
	ResourceType  string   `json:"resource_type"`
	Tags          []string `json:"tags"`
	PublishedDate string   `json:"published_date"`
	IsFeatured    bool     `json:"is_featured"`
	Views         int      `json:"views"`
	Summary       string   `json:"summary,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// ResourceList is a paged resource listing.
type ResourceList struct {
	Count   int        `json:"count"`
	Next    bool       `json:"next"`
	Results []Resource `json:"results"`
}
