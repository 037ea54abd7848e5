package db

import (
	"database/sql"
	"log"
)

const (
	sqlCreateLettersTable = `CREATE TABLE IF NOT EXISTS letters(
                        id varchar(128) NOT NULL PRIMARY KEY,
                        content text NOT NULL,
                        author_nickname varchar(100) NOT NULL,
                        created_at timestamp default current_timestamp,
                        reply_content text,
                        reply_at timestamp
                        )`

	sqlCreateLettersIndices = `
		CREATE INDEX IF NOT EXISTS idx_letters_created_at ON letters(created_at DESC);
	`
)

// RunMigrations creates the schema and applies column additions made after
// the first release. It is safe to run on every start.
func (db *DB) RunMigrations() error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		if err := db.createTableIfNotExists(tx, sqlCreateLettersTable, "letters"); err != nil {
			return err
		}

		if _, err := tx.Exec(sqlCreateLettersIndices); err != nil {
			log.Printf("Warning: Failed to create letters indices: %v", err)
		}

		db.extendExistingTables(tx)
		return nil
	})
}

func (db *DB) createTableIfNotExists(tx *sql.Tx, createSQL string, tableName string) error {
	_, err := tx.Exec(createSQL)
	if err != nil {
		log.Printf("Error creating table %s: %v", tableName, err)
		return err
	}
	log.Printf("Table %s created or already exists", tableName)
	return nil
}

func (db *DB) extendExistingTables(tx *sql.Tx) {
	exists, err := columnExists(tx, "letters", "replier_nickname")
	if err != nil {
		log.Printf("Warning: Failed to inspect letters table: %v", err)
		return
	}
	if !exists {
		if _, err := tx.Exec(`ALTER TABLE letters ADD COLUMN replier_nickname varchar(100)`); err != nil {
			log.Printf("Warning: Failed to add replier_nickname: %v", err)
		}
	}
}

func columnExists(tx *sql.Tx, table string, column string) (bool, error) {
	rows, err := tx.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
