package models

// Book carries its author and genre nested for display; either may be null.
type Book struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Author          *Author `json:"author"`
	Genre           *Genre  `json:"genre"`
	PublishedDate   Date    `json:"published_date"`
	AvailableCopies int     `json:"available_copies"`
}

// AuthorName returns the nested author's name or "N/A".
func (b *Book) AuthorName() string {
	if b.Author == nil || b.Author.Name == "" {
		return "N/A"
	}
	return b.Author.Name
}

// GenreName returns the nested genre's name or "N/A".
func (b *Book) GenreName() string {
	if b.Genre == nil || b.Genre.Name == "" {
		return "N/A"
	}
	return b.Genre.Name
}

// BookInput is the create/update payload; relations are sent by ID.
type BookInput struct {
	Title           string `json:"title"`
	AuthorID        int    `json:"author_id"`
	GenreID         int    `json:"genre_id"`
	PublishedDate   Date   `json:"published_date"`
	AvailableCopies int    `json:"available_copies"`
}

// DefaultAvailableCopies is used when a new book is added without a copy count.
const DefaultAvailableCopies = 1
