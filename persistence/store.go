// Package persistence saves node snapshots into a SQLite database.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/cropper/hopper"
)

const schema = `
CREATE TABLE IF NOT EXISTS hoppers (
	name TEXT PRIMARY KEY,
	transfer_cooldown INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS hopper_slots (
	hopper TEXT NOT NULL REFERENCES hoppers(name) ON DELETE CASCADE,
	slot INTEGER NOT NULL,
	item TEXT NOT NULL,
	max_count INTEGER NOT NULL,
	variant INTEGER NOT NULL,
	tag TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (hopper, slot)
);`

// Store keeps node snapshots by node name.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database file.
func Open(filename string) (*Store, error) {
	db, err := sql.Open("sqlite3", filename+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("persistence: opening %s: %w", filename, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot stored under the name.
func (s *Store) Save(ctx context.Context, name string, st hopper.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("persistence: saving %s: %w", name, err)
	}

	if err := saveInTx(ctx, tx, name, st); err != nil {
		tx.Rollback()
		return fmt.Errorf("persistence: saving %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("persistence: saving %s: %w", name, err)
	}

	return nil
}

func saveInTx(ctx context.Context, tx *sql.Tx, name string, st hopper.State) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM hopper_slots WHERE hopper = ?`, name)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO hoppers (name, transfer_cooldown) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
		transfer_cooldown = excluded.transfer_cooldown`,
		name, st.TransferCooldown)
	if err != nil {
		return err
	}

	for _, r := range st.Slots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO hopper_slots
			(hopper, slot, item, max_count, variant, tag, count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			name, r.Slot, r.Item, r.MaxCount, r.Variant, r.Tag, r.Count)
		if err != nil {
			return err
		}
	}

	return nil
}

// Load returns the snapshot stored under the name. The bool is false if the
// name was never saved.
func (s *Store) Load(ctx context.Context, name string) (hopper.State, bool, error) {
	var st hopper.State

	err := s.db.QueryRowContext(ctx,
		`SELECT transfer_cooldown FROM hoppers WHERE name = ?`, name,
	).Scan(&st.TransferCooldown)
	if errors.Is(err, sql.ErrNoRows) {
		return hopper.State{}, false, nil
	}

	if err != nil {
		return hopper.State{}, false,
			fmt.Errorf("persistence: loading %s: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, item, max_count, variant, tag, count
		FROM hopper_slots WHERE hopper = ? ORDER BY slot`, name)
	if err != nil {
		return hopper.State{}, false,
			fmt.Errorf("persistence: loading slots of %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r hopper.SlotRecord

		err := rows.Scan(&r.Slot, &r.Item, &r.MaxCount, &r.Variant, &r.Tag,
			&r.Count)
		if err != nil {
			return hopper.State{}, false,
				fmt.Errorf("persistence: loading slots of %s: %w", name, err)
		}

		st.Slots = append(st.Slots, r)
	}

	if err := rows.Err(); err != nil {
		return hopper.State{}, false,
			fmt.Errorf("persistence: loading slots of %s: %w", name, err)
	}

	return st, true, nil
}

// Names returns the names of all saved nodes, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM hoppers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("persistence: listing nodes: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("persistence: listing nodes: %w", err)
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// SaveNodes saves the snapshot of every node under its name.
func (s *Store) SaveNodes(ctx context.Context, nodes []*hopper.Comp) error {
	for _, n := range nodes {
		if err := s.Save(ctx, n.Name(), n.Snapshot()); err != nil {
			return err
		}
	}

	return nil
}

// RestoreNodes restores every node that has a saved snapshot and returns how
// many were restored.
func (s *Store) RestoreNodes(
	ctx context.Context,
	nodes []*hopper.Comp,
) (int, error) {
	restored := 0

	for _, n := range nodes {
		st, found, err := s.Load(ctx, n.Name())
		if err != nil {
			return restored, err
		}

		if !found {
			continue
		}

		n.Restore(st)
		restored++
	}

	return restored, nil
}
