package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuznet/cinelog/internal/platform/database/schema"
	"github.com/mkuznet/cinelog/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListGenres(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefGenre.ID,
		schema.RefGenre.Name,
		schema.RefGenre.Table,
		schema.RefGenre.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) GetGenreByID(context context.Context, id int64) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.RefGenre.ID,
		schema.RefGenre.Name,
		schema.RefGenre.Table,
		schema.RefGenre.ID,
	)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre")
	}
	return g, nil
}
