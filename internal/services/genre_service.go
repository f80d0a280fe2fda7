package services

import (
	"context"
	"fmt"
	"strings"

	"library-admin/internal/backend"
	"library-admin/internal/models"
)

type GenreService struct {
	Genres  *backend.Resource[models.Genre, models.GenreInput]
	Changes *ChangeLog
}

func NewGenreService(lib *backend.Library, changes *ChangeLog) *GenreService {
	return &GenreService{Genres: lib.Genres, Changes: changes}
}

func validateGenre(in *models.GenreInput) error {
	in.Name = strings.TrimSpace(in.Name)

	f := fieldErrors{}
	f.required("name", in.Name)
	return f.err()
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	return cachedList(ctx, backend.ResourceGenres, s.Genres.List)
}

func (s *GenreService) Create(ctx context.Context, in models.GenreInput) (*models.Genre, error) {
	if err := validateGenre(&in); err != nil {
		return nil, err
	}

	genre, err := s.Genres.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceGenres, models.ActionCreate, genre.ID,
		fmt.Sprintf("Added genre %q", genre.Name), in)
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id int, in models.GenreInput) (*models.Genre, error) {
	if err := validateGenre(&in); err != nil {
		return nil, err
	}

	genre, err := s.Genres.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.Changes.Record(ctx, backend.ResourceGenres, models.ActionUpdate, id,
		fmt.Sprintf("Updated genre %q", genre.Name), in)
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id int) error {
	if err := s.Genres.Delete(ctx, id); err != nil {
		return err
	}

	s.Changes.Record(ctx, backend.ResourceGenres, models.ActionDelete, id,
		fmt.Sprintf("Deleted genre #%d", id), nil)
	return nil
}
