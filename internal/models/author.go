package models

// Author is a book author as served by the backend's /authors/ resource.
type Author struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

// AuthorInput is the create/update payload for an author.
type AuthorInput struct {
	Name      string `json:"name"`
	Biography string `json:"biography"`
}
