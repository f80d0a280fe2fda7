package services

import (
	"context"
	"fmt"
	"strings"

	"library-admin/internal/backend"
	"library-admin/internal/models"
)

type AuthorService struct {
	Authors *backend.Resource[models.Author, models.AuthorInput]
	Changes *ChangeLog
}

func NewAuthorService(lib *backend.Library, changes *ChangeLog) *AuthorService {
	return &AuthorService{Authors: lib.Authors, Changes: changes}
}

func validateAuthor(in *models.AuthorInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Biography = strings.TrimSpace(in.Biography)

	f := fieldErrors{}
	f.required("name", in.Name)
	f.required("biography", in.Biography)
	return f.err()
}

func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	return cachedList(ctx, backend.ResourceAuthors, s.Authors.List)
}

func (s *AuthorService) Create(ctx context.Context, in models.AuthorInput) (*models.Author, error) {
	if err := validateAuthor(&in); err != nil {
		return nil, err
	}

	author, err := s.Authors.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceAuthors, models.ActionCreate, author.ID,
		fmt.Sprintf("Added author %q", author.Name), in)
	return author, nil
}

func (s *AuthorService) Update(ctx context.Context, id int, in models.AuthorInput) (*models.Author, error) {
	if err := validateAuthor(&in); err != nil {
		return nil, err
	}

	author, err := s.Authors.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceAuthors, models.ActionUpdate, id,
		fmt.Sprintf("Updated author %q", author.Name), in)
	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id int) error {
	if err := s.Authors.Delete(ctx, id); err != nil {
		return err
	}

	s.Changes.Record(ctx, backend.ResourceAuthors, models.ActionDelete, id,
		fmt.Sprintf("Deleted author #%d", id), nil)
	return nil
}
