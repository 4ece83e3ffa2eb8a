package oplogo

import (
	"crypto/sha1"
	"database/sql"
	"fmt"

	"github.com/bodgit/oplogo/plmn"
	_ "github.com/mattn/go-sqlite3"
)

// LogoDB is a named collection of logos stored in SQLite.
type LogoDB struct {
	db *sql.DB
}

// Entry describes a stored logo.
type Entry struct {
	ID      int64
	Name    string
	Network plmn.ID
	Token   string
	SHA1    string
}

// NewLogoDB opens, creating if necessary, the database in file.
func NewLogoDB(file string) (*LogoDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// SQLite only allows a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS logo (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, mcc INTEGER NOT NULL, mnc INTEGER NOT NULL, bitmap TEXT NOT NULL, sha1 TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &LogoDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *LogoDB) Close() error {
	return db.db.Close()
}

// Fingerprint returns the SHA-1 of the hex form of l, which identifies
// both the bitmap and the network.
func Fingerprint(l *Logo) string {
	h := sha1.Sum([]byte(l.EncodeHex()))
	return fmt.Sprintf("%X", h[:])
}

// Save stores l under name, replacing any logo already using it, and
// returns its row ID.
func (db *LogoDB) Save(name string, l *Logo) (int64, error) {
	network := l.Network()
	sha := Fingerprint(l)

	var id int64
	if err := db.db.QueryRow("INSERT INTO logo (name, mcc, mnc, bitmap, sha1) VALUES (?, ?, ?, ?, ?) ON CONFLICT (name) DO UPDATE SET mcc = excluded.mcc, mnc = excluded.mnc, bitmap = excluded.bitmap, sha1 = excluded.sha1 RETURNING id", name, network.MCC, network.MNC, l.EncodeBase64(), sha).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Load returns the logo stored under name, or ErrNotFound.
func (db *LogoDB) Load(name string) (*Logo, error) {
	var mcc, mnc int
	var token string
	switch err := db.db.QueryRow("SELECT mcc, mnc, bitmap FROM logo WHERE name = ?", name).Scan(&mcc, &mnc, &token); err {
	case sql.ErrNoRows:
		return nil, ErrNotFound
	case nil:
		l, err := FromBase64(token)
		if err != nil {
			return nil, fmt.Errorf("logo %q: %w", name, err)
		}
		if err := l.SetNetwork(plmn.ID{MCC: mcc, MNC: mnc}); err != nil {
			return nil, fmt.Errorf("logo %q: %w", name, err)
		}
		return l, nil
	default:
		return nil, err
	}
}

// List returns every stored logo ordered by name.
func (db *LogoDB) List() ([]Entry, error) {
	rows, err := db.db.Query("SELECT id, name, mcc, mnc, bitmap, sha1 FROM logo ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Network.MCC, &e.Network.MNC, &e.Token, &e.SHA1); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FindBySHA1 returns the names of stored logos with the given fingerprint.
func (db *LogoDB) FindBySHA1(sha string) ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM logo WHERE sha1 = ? ORDER BY name", sha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the logo stored under name, or returns ErrNotFound.
func (db *LogoDB) Delete(name string) error {
	result, err := db.db.Exec("DELETE FROM logo WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
