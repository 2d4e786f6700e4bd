package mpa

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

func (repository *PostgresRepository) ListRatings(context context.Context) ([]*MPA, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefMpa.ID,
		schema.RefMpa.Name,
		schema.RefMpa.Table,
		schema.RefMpa.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_mpa")
	}
	defer rows.Close()

	var ratings []*MPA
	for rows.Next() {
		rating := &MPA{}
		if err := rows.Scan(&rating.ID, &rating.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_mpa")
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

func (repository *PostgresRepository) GetRatingByID(context context.Context, id int64) (*MPA, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.RefMpa.ID,
		schema.RefMpa.Name,
		schema.RefMpa.Table,
		schema.RefMpa.ID,
	)

	rating := &MPA{}
	err := repository.db.QueryRow(context, query, id).Scan(&rating.ID, &rating.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_mpa")
	}
	return rating, nil
}
