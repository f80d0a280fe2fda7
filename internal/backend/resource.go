package backend

import (
	"context"
	"net/http"

	"library-admin/internal/models"
)

// Resource names as they appear in backend paths
const (
	ResourceAuthors = "authors"
	ResourceGenres  = "genres"
	ResourceBooks   = "books"
	ResourceBorrows = "borrows"
)

// Resource is the CRUD surface of one backend collection. T is the object the
// backend returns, In the payload it accepts.
type Resource[T any, In any] struct {
	client *Client
	name   string
}

// NewResource binds a collection name to the client.
func NewResource[T any, In any](client *Client, name string) *Resource[T, In] {
	return &Resource[T, In]{client: client, name: name}
}

// Name returns the collection name.
func (r *Resource[T, In]) Name() string {
	return r.name
}

func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.client.do(ctx, r.name, "list", http.MethodGet, r.client.collectionURL(r.name), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var created T
	if err := r.client.do(ctx, r.name, "create", http.MethodPost, r.client.collectionURL(r.name), in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Resource[T, In]) Update(ctx context.Context, id int, in In) (*T, error) {
	var updated T
	if err := r.client.do(ctx, r.name, "update", http.MethodPut, r.client.itemURL(r.name, id), in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, r.name, "delete", http.MethodDelete, r.client.itemURL(r.name, id), nil, nil)
}

// Library groups the four collections the admin interface manages.
type Library struct {
	Authors *Resource[models.Author, models.AuthorInput]
	Genres  *Resource[models.Genre, models.GenreInput]
	Books   *Resource[models.Book, models.BookInput]
	Borrows *Resource[models.BorrowRecord, models.BorrowInput]
}

// NewLibrary wires every collection to the same client.
func NewLibrary(client *Client) *Library {
	return &Library{
		Authors: NewResource[models.Author, models.AuthorInput](client, ResourceAuthors),
		Genres:  NewResource[models.Genre, models.GenreInput](client, ResourceGenres),
		Books:   NewResource[models.Book, models.BookInput](client, ResourceBooks),
		Borrows: NewResource[models.BorrowRecord, models.BorrowInput](client, ResourceBorrows),
	}
}
