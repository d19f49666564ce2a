package store

import (
	"context"
	"database/sql"
	"log"
	"sync"

	"f1standings/pkg/model"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const DbName = "./f1standings.db"

// Store keeps a season of results in SQLite so it can be served without the
// original spreadsheet.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*Store, error) {
	if path == "" {
		path = DbName
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, errors.Wrapf(err, "open database %s", path)
	}

	for _, stmt := range []string{buildCreateResultsTable(), buildCreateSubscribersTable()} {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("error init database: %s\n", err)
			db.Close()
			return nil, errors.Wrap(err, "init database")
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

// ReplaceResults swaps the stored season for results in one transaction.
func (s *Store) ReplaceResults(ctx context.Context, results model.Results) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, buildDeleteResultsCommand()); err != nil {
		return errors.Wrap(err, "clear results")
	}
	stmt, err := tx.PrepareContext(ctx, buildInsertResultCommand())
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.ExecContext(ctx, i, r.Driver, r.Race, r.Round, r.Standing, r.TotalPoints); err != nil {
			return errors.Wrapf(err, "insert result %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "commit results")
}

// ListResults returns the stored rows in their original order.
func (s *Store) ListResults(ctx context.Context) (model.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, read := buildSelectResultsCommand()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query results")
	}
	return read(rows)
}

func (s *Store) AddSubscriber(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, buildInsertSubscriberCommand(), chatID)
	return errors.Wrapf(err, "add subscriber %d", chatID)
}

// RemoveSubscriber reports whether the chat was subscribed.
func (s *Store) RemoveSubscriber(ctx context.Context, chatID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, buildDeleteSubscriberCommand(), chatID)
	if err != nil {
		return false, errors.Wrapf(err, "remove subscriber %d", chatID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ListSubscribers(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query, read := buildSelectSubscribersCommand()
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "query subscribers")
	}
	return read(rows)
}
