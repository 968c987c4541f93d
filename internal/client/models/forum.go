package models

// Thread is a forum thread summary.
type Thread struct {
	PublicID      string   `json:"public_id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Author        UserRef  `json:"author"`
	Views         int      `json:"views"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	IsPinned      bool     `json:"is_pinned"`
	CommentsCount int      `json:"comments_count"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
}

// Comment is a thread comment, possibly with nested replies.
type Comment struct {
	PublicID  string    `json:"public_id"`
	Thread    string    `json:"thread"`
	Author    UserRef   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	Parent    string    `json:"parent,omitempty"`
	Replies   []Comment `json:"replies"`
	IsAuthor  bool      `json:"is_author"`
}

// CommentPage is the paged comment listing embedded in a thread detail.
type CommentPage struct {
	Results []Comment `json:"results"`
	Next    string    `json:"next"`
	HasMore bool      `json:"has_more"`
}

// ThreadDetail is a thread with its first page of comments.
type ThreadDetail struct {
	Thread
	Comments CommentPage `json:"comments"`
}

// ThreadCreate is the payload for creating a thread.
type ThreadCreate struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// ThreadUpdate is a partial thread edit.
type ThreadUpdate struct {
	Title    *string  `json:"title,omitempty"`
	Content  *string  `json:"content,omitempty"`
	Category *string  `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}
