package handlers

// notices holds the wording of one page's notifications.
type notices struct {
	Added        Flash
	Updated      Flash
	Deleted      Flash
	AddFailed    string
	UpdateFailed string
	DeleteFailed string
	LoadFailed   string
	Missing      string
}

var authorNotices = notices{
	Added:        Flash{Kind: FlashSuccess, Title: "Author Added"},
	Updated:      Flash{Kind: FlashSuccess, Title: "Updated", Text: "Author details updated successfully."},
	Deleted:      Flash{Kind: FlashSuccess, Title: "Deleted"},
	AddFailed:    "Could not add author.",
	UpdateFailed: "Could not update author.",
	DeleteFailed: "Could not delete author.",
	LoadFailed:   "Could not load authors.",
	Missing:      "Please fill in both fields.",
}

var genreNotices = notices{
	Added:        Flash{Kind: FlashSuccess, Title: "Genre Added!", Text: "New genre has been added successfully."},
	Updated:      Flash{Kind: FlashSuccess, Title: "Updated", Text: "Genre updated successfully."},
	Deleted:      Flash{Kind: FlashSuccess, Title: "Removed!", Text: "Genre has been removed."},
	AddFailed:    "Could not add genre.",
	UpdateFailed: "Could not update genre.",
	DeleteFailed: "Could not delete genre.",
	LoadFailed:   "Failed to load genres from backend!",
	Missing:      "Please enter a genre name.",
}

var bookNotices = notices{
	Added:        Flash{Kind: FlashSuccess, Title: "Book Added", Text: "Book added successfully!"},
	Updated:      Flash{Kind: FlashSuccess, Title: "Updated", Text: "Book updated successfully."},
	Deleted:      Flash{Kind: FlashSuccess, Title: "Deleted", Text: "Book removed successfully."},
	AddFailed:    "Unable to add book.",
	UpdateFailed: "Unable to update book.",
	DeleteFailed: "Could not delete book.",
	LoadFailed:   "Backend connection failed.",
	Missing:      "Please fill in all required fields.",
}

var borrowNotices = notices{
	Added:        Flash{Kind: FlashSuccess, Title: "Borrow Record Added"},
	Updated:      Flash{Kind: FlashSuccess, Title: "Updated", Text: "Borrow record updated."},
	Deleted:      Flash{Kind: FlashSuccess, Title: "Deleted", Text: "Borrow record deleted."},
	AddFailed:    "Could not add borrow record.",
	UpdateFailed: "Could not update borrow record.",
	DeleteFailed: "Could not delete record.",
	LoadFailed:   "Failed to load borrow data.",
	Missing:      "Please fill all required fields.",
}
