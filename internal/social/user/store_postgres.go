package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuznet/cinelog/internal/platform/database/schema"
	"github.com/mkuznet/cinelog/internal/platform/dberr"
	"github.com/mkuznet/cinelog/pkg/dateonly"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CreateUser(context context.Context, user *User) (*User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s;
	`,
		schema.User.Table,
		schema.User.Login, schema.User.Name, schema.User.Email, schema.User.Birthday,
		schema.User.ID,
	)

	created := user.Clone()
	err := repository.db.QueryRow(context, query,
		user.Login, user.Name, user.Email, user.Birthday.Time,
	).Scan(&created.ID)
	if err != nil {
		return nil, dberr.Wrap(err, "create_user")
	}

	return created, nil
}

func (repository *PostgresRepository) UpdateUser(context context.Context, user *User) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4
		WHERE %s = $5;
	`,
		schema.User.Table,
		schema.User.Login, schema.User.Name, schema.User.Email, schema.User.Birthday,
		schema.User.ID,
	)

	tag, err := repository.db.Exec(context, query,
		user.Login, user.Name, user.Email, user.Birthday.Time, user.ID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}

	return user.Clone(), nil
}

func (repository *PostgresRepository) ListUsers(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.User.ID, schema.User.Login, schema.User.Name, schema.User.Email, schema.User.Birthday,
		schema.User.Table,
		schema.User.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		var birthday time.Time
		if err := rows.Scan(&u.ID, &u.Login, &u.Name, &u.Email, &birthday); err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		u.Birthday = dateonly.FromTime(birthday)
		users = append(users, u)
	}

	return users, nil
}

func (repository *PostgresRepository) GetUserByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.User.ID, schema.User.Login, schema.User.Name, schema.User.Email, schema.User.Birthday,
		schema.User.Table,
		schema.User.ID,
	)

	u := &User{}
	var birthday time.Time
	err := repository.db.QueryRow(context, query, id).Scan(&u.ID, &u.Login, &u.Name, &u.Email, &birthday)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	u.Birthday = dateonly.FromTime(birthday)

	return u, nil
}

func (repository *PostgresRepository) DeleteUserByID(context context.Context, id int64) error {
	// Friendship and like edges cascade via ON DELETE CASCADE constraints.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1;`, schema.User.Table, schema.User.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ClearUsers(context context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s;`, schema.User.Table)
	_, err := repository.db.Exec(context, query)
	return dberr.Wrap(err, "clear_users")
}

func (repository *PostgresRepository) AddFriend(context context.Context, userID, friendID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;
	`,
		schema.Friend.Table, schema.Friend.UserID, schema.Friend.FriendID,
	)

	_, err := repository.db.Exec(context, query, userID, friendID)
	return dberr.Wrap(err, "add_friend")
}

func (repository *PostgresRepository) DeleteFriend(context context.Context, userID, friendID int64) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2;
	`,
		schema.Friend.Table, schema.Friend.UserID, schema.Friend.FriendID,
	)

	tag, err := repository.db.Exec(context, query, userID, friendID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_friend")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) FriendIDs(context context.Context, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC;
	`,
		schema.Friend.FriendID,
		schema.Friend.Table,
		schema.Friend.UserID,
		schema.Friend.FriendID,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_friend_ids")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_friend_id")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
