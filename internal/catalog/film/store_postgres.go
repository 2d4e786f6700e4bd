package film

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuznet/cinelog/internal/catalog/genre"
	"github.com/mkuznet/cinelog/internal/catalog/mpa"
	"github.com/mkuznet/cinelog/internal/platform/database/schema"
	"github.com/mkuznet/cinelog/internal/platform/dberr"
	"github.com/mkuznet/cinelog/pkg/dateonly"
	"github.com/mkuznet/cinelog/pkg/pointer"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// filmSelect is the hydrating projection shared by every read path: the
// film row, its optional classification, and the current like count.
func filmSelect() string {
	return fmt.Sprintf(`
		SELECT f.%s, f.%s, f.%s, f.%s, f.%s,
		       m.%s, m.%s,
		       (SELECT COUNT(*) FROM %s l WHERE l.%s = f.%s) AS rate
		FROM %s f
		LEFT JOIN %s m ON f.%s = m.%s
	`,
		schema.Film.ID, schema.Film.Name, schema.Film.Description, schema.Film.ReleaseDate, schema.Film.Duration,
		schema.RefMpa.ID, schema.RefMpa.Name,
		schema.Like.Table, schema.Like.FilmID, schema.Film.ID,
		schema.Film.Table,
		schema.RefMpa.Table, schema.Film.MpaID, schema.RefMpa.ID,
	)
}

func (repository *PostgresRepository) CreateFilm(context context.Context, film *Film) (*Film, error) {
	normalized := film.Clone()
	normalized.NormalizeGenres()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_create_film")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s;
	`,
		schema.Film.Table,
		schema.Film.Name, schema.Film.Description, schema.Film.ReleaseDate, schema.Film.Duration, schema.Film.MpaID,
		schema.Film.ID,
	)

	var filmID int64
	err = transaction.QueryRow(context, query,
		normalized.Name, normalized.Description, normalized.ReleaseDate.Time, normalized.Duration, mpaID(normalized),
	).Scan(&filmID)
	if err != nil {
		return nil, dberr.Wrap(err, "create_film")
	}

	if err := replaceGenres(context, transaction, filmID, normalized.Genres); err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_create_film")
	}

	return repository.GetFilmByID(context, filmID)
}

func (repository *PostgresRepository) UpdateFilm(context context.Context, film *Film) (*Film, error) {
	normalized := film.Clone()
	normalized.NormalizeGenres()

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_film")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $6;
	`,
		schema.Film.Table,
		schema.Film.Name, schema.Film.Description, schema.Film.ReleaseDate, schema.Film.Duration, schema.Film.MpaID,
		schema.Film.ID,
	)

	tag, err := transaction.Exec(context, query,
		normalized.Name, normalized.Description, normalized.ReleaseDate.Time, normalized.Duration, mpaID(normalized),
		normalized.ID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_film")
	}
	if tag.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}

	unlink := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, schema.FilmGenre.Table, schema.FilmGenre.FilmID)
	if _, err := transaction.Exec(context, unlink, normalized.ID); err != nil {
		return nil, dberr.Wrap(err, "clear_film_genres")
	}

	if err := replaceGenres(context, transaction, normalized.ID, normalized.Genres); err != nil {
		return nil, err
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_film")
	}

	return repository.GetFilmByID(context, normalized.ID)
}

func (repository *PostgresRepository) ListFilms(context context.Context) ([]*Film, error) {
	query := filmSelect() + fmt.Sprintf(` ORDER BY f.%s ASC;`, schema.Film.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_films")
	}
	defer rows.Close()

	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}

	if err := repository.attachGenres(context, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (repository *PostgresRepository) GetFilmByID(context context.Context, id int64) (*Film, error) {
	query := filmSelect() + fmt.Sprintf(` WHERE f.%s = $1;`, schema.Film.ID)

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_film")
	}
	defer rows.Close()

	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, dberr.ErrNotFound
	}

	if err := repository.attachGenres(context, films); err != nil {
		return nil, err
	}
	return films[0], nil
}

func (repository *PostgresRepository) DeleteFilmByID(context context.Context, id int64) error {
	// Genre links and likes cascade via ON DELETE CASCADE constraints.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, schema.Film.Table, schema.Film.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_film")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ClearFilms(context context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s;`, schema.Film.Table)
	_, err := repository.db.Exec(context, query)
	return dberr.Wrap(err, "clear_films")
}

func (repository *PostgresRepository) AddLike(context context.Context, filmID, userID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`,
		schema.Like.Table, schema.Like.FilmID, schema.Like.UserID,
	)

	_, err := repository.db.Exec(context, query, filmID, userID)
	return dberr.Wrap(err, "add_like")
}

func (repository *PostgresRepository) DeleteLike(context context.Context, filmID, userID int64) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2;
	`,
		schema.Like.Table, schema.Like.FilmID, schema.Like.UserID,
	)

	tag, err := repository.db.Exec(context, query, filmID, userID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_like")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) PopularFilms(context context.Context, count int) ([]*Film, error) {
	query := filmSelect() + fmt.Sprintf(` ORDER BY rate DESC, f.%s ASC LIMIT $1;`, schema.Film.ID)

	rows, err := repository.db.Query(context, query, count)
	if err != nil {
		return nil, dberr.Wrap(err, "popular_films")
	}
	defer rows.Close()

	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}

	if err := repository.attachGenres(context, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (repository *PostgresRepository) DeleteLikesByUser(context context.Context, userID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, schema.Like.Table, schema.Like.UserID)
	_, err := repository.db.Exec(context, query, userID)
	return dberr.Wrap(err, "delete_likes_by_user")
}

// # Internal Helpers

// mpaID flattens the optional classification into a nullable column value.
func mpaID(film *Film) *int64 {
	if film.MPA == nil {
		return nil
	}
	return pointer.To(film.MPA.ID)
}

// replaceGenres inserts the genre links for one film inside a transaction.
// Unknown genre ids fail the foreign key and surface as NotFound.
func replaceGenres(context context.Context, transaction pgx.Tx, filmID int64, genres []genre.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`,
		schema.FilmGenre.Table, schema.FilmGenre.FilmID, schema.FilmGenre.GenreID,
	)

	for _, g := range genres {
		if _, err := transaction.Exec(context, query, filmID, g.ID); err != nil {
			return dberr.Wrap(err, "link_film_genre")
		}
	}
	return nil
}

// scanFilms reads the filmSelect projection into hydrated entities.
func scanFilms(rows pgx.Rows) ([]*Film, error) {
	var films []*Film
	for rows.Next() {
		f := &Film{Genres: []genre.Genre{}}
		var releaseDate time.Time
		var ratingID *int64
		var ratingName *string

		err := rows.Scan(&f.ID, &f.Name, &f.Description, &releaseDate, &f.Duration, &ratingID, &ratingName, &f.Rate)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_film")
		}

		f.ReleaseDate = dateonly.FromTime(releaseDate)
		if ratingID != nil && ratingName != nil {
			f.MPA = &mpa.MPA{ID: *ratingID, Name: *ratingName}
		}
		films = append(films, f)
	}
	return films, nil
}

// attachGenres loads the genre sets for the given films in one round-trip.
func (repository *PostgresRepository) attachGenres(context context.Context, films []*Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int64]*Film, len(films))
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	query := fmt.Sprintf(`
		SELECT fg.%s, g.%s, g.%s
		FROM %s fg
		JOIN %s g ON fg.%s = g.%s
		WHERE fg.%s = ANY($1)
		ORDER BY fg.%s ASC, g.%s ASC;
	`,
		schema.FilmGenre.FilmID, schema.RefGenre.ID, schema.RefGenre.Name,
		schema.FilmGenre.Table,
		schema.RefGenre.Table, schema.FilmGenre.GenreID, schema.RefGenre.ID,
		schema.FilmGenre.FilmID,
		schema.FilmGenre.FilmID, schema.RefGenre.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_film_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var g genre.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return dberr.Wrap(err, "scan_film_genre")
		}
		if f, ok := byID[filmID]; ok {
			f.Genres = append(f.Genres, g)
		}
	}
	return nil
}
