package store

import (
	"database/sql"
)

// CalibrationRepository persists per-sign confidence thresholds and
// action bindings. It is vocabulary-agnostic; callers supply label strings.
type CalibrationRepository struct {
	db *sql.DB
}

// Calibration returns the calibration repository for this store.
func (s *Store) Calibration() *CalibrationRepository {
	return &CalibrationRepository{db: s.db}
}

// Thresholds returns all per-label threshold overrides.
func (r *CalibrationRepository) Thresholds() (map[string]float64, error) {
	rows, err := r.db.Query(`SELECT label, threshold FROM label_thresholds`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	thresholds := make(map[string]float64)
	for rows.Next() {
		var label string
		var threshold float64
		if err := rows.Scan(&label, &threshold); err != nil {
			return nil, err
		}
		thresholds[label] = threshold
	}

	return thresholds, rows.Err()
}

// SetThresholds replaces all threshold overrides in one transaction.
func (r *CalibrationRepository) SetThresholds(thresholds map[string]float64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM label_thresholds`); err != nil {
		return err
	}
	for label, threshold := range thresholds {
		_, err := tx.Exec(
			`INSERT INTO label_thresholds (label, threshold) VALUES (?, ?)`,
			label, threshold,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Bindings returns all label-to-action bindings as wire action names.
func (r *CalibrationRepository) Bindings() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT label, action FROM action_bindings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bindings := make(map[string]string)
	for rows.Next() {
		var label, action string
		if err := rows.Scan(&label, &action); err != nil {
			return nil, err
		}
		bindings[label] = action
	}

	return bindings, rows.Err()
}

// SetBindings replaces all action bindings in one transaction.
func (r *CalibrationRepository) SetBindings(bindings map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM action_bindings`); err != nil {
		return err
	}
	for label, action := range bindings {
		_, err := tx.Exec(
			`INSERT INTO action_bindings (label, action) VALUES (?, ?)`,
			label, action,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SeedDefaults writes the given thresholds and bindings only when the
// corresponding tables are empty, so user calibration survives restarts.
func (r *CalibrationRepository) SeedDefaults(thresholds map[string]float64, bindings map[string]string) error {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM label_thresholds`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if err := r.SetThresholds(thresholds); err != nil {
			return err
		}
	}

	if err := r.db.QueryRow(`SELECT COUNT(*) FROM action_bindings`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if err := r.SetBindings(bindings); err != nil {
			return err
		}
	}

	return nil
}
