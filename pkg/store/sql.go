package store

import (
	"database/sql"

	"f1standings/pkg/model"
)

func buildCreateResultsTable() string {
	return `CREATE TABLE IF NOT EXISTS results (
		seq INTEGER PRIMARY KEY,
		driver TEXT NOT NULL,
		race TEXT NOT NULL,
		round INTEGER NOT NULL,
		standing INTEGER NOT NULL,
		total_points REAL NOT NULL);`
}

func buildDeleteResultsCommand() string {
	return `DELETE FROM results`
}

func buildInsertResultCommand() string {
	return `INSERT INTO results (seq, driver, race, round, standing, total_points) VALUES (?, ?, ?, ?, ?, ?)`
}

func buildSelectResultsCommand() (string, func(*sql.Rows) (model.Results, error)) {
	fields := "driver, race, round, standing, total_points"
	return `SELECT ` + fields + ` FROM results ORDER BY seq`, processSelectResultsRows
}

func processSelectResultsRows(rows *sql.Rows) (model.Results, error) {
	defer rows.Close()

	results := make(model.Results, 0)
	for rows.Next() {
		var r model.Result
		err := rows.Scan(&r.Driver, &r.Race, &r.Round, &r.Standing, &r.TotalPoints)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func buildCreateSubscribersTable() string {
	return `CREATE TABLE IF NOT EXISTS subscribers (
		chatid INTEGER PRIMARY KEY);`
}

func buildInsertSubscriberCommand() string {
	return `INSERT OR IGNORE INTO subscribers (chatid) VALUES (?)`
}

func buildDeleteSubscriberCommand() string {
	return `DELETE FROM subscribers WHERE chatid = ?`
}

func buildSelectSubscribersCommand() (string, func(*sql.Rows) ([]int64, error)) {
	return `SELECT chatid FROM subscribers ORDER BY chatid`, processSelectSubscribersRows
}

func processSelectSubscribersRows(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()

	chatIDs := make([]int64, 0)
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return chatIDs, err
		}
		chatIDs = append(chatIDs, chatID)
	}
	return chatIDs, rows.Err()
}
