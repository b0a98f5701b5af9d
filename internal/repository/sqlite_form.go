package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tbeaumont/crfstudio/internal/db"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// SQLiteFormRepo implements FormRepo over a SQLite database. A visit is
// saved by replacing its sections and fields wholesale: the wire format
// carries no stable child identity for new entities, so rows are matched
// positionally and ids are assigned where the payload sends null.
// Concurrent saves of the same visit last-write-win; there is no
// optimistic locking.
type SQLiteFormRepo struct {
	db db.DBTX
}

func NewSQLiteFormRepo(dbtx db.DBTX) *SQLiteFormRepo {
	return &SQLiteFormRepo{db: dbtx}
}

func (r *SQLiteFormRepo) SaveVisit(ctx context.Context, studyID string, form wire.Form) (string, error) {
	visitID := ""
	if form.ID != nil {
		visitID = *form.ID
	}

	if visitID == "" {
		visitID = domain.NewID()
		query := `INSERT INTO visits (id, study_id, title, ord, is_hidden, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		_, err := r.db.ExecContext(ctx, query,
			visitID, studyID, form.Title, form.Order, boolToInt(form.IsHidden), nowUTC(), nowUTC())
		if err != nil {
			return "", fmt.Errorf("inserting visit: %w", err)
		}
	} else {
		query := `UPDATE visits SET title = ?, ord = ?, is_hidden = ?, updated_at = ? WHERE id = ?`
		res, err := r.db.ExecContext(ctx, query,
			form.Title, form.Order, boolToInt(form.IsHidden), nowUTC(), visitID)
		if err != nil {
			return "", fmt.Errorf("updating visit: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return "", fmt.Errorf("visit %s: %w", visitID, ErrNotFound)
		}
		// Replace the visit's children; fields cascade with their sections.
		if _, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE visit_id = ?`, visitID); err != nil {
			return "", fmt.Errorf("clearing visit sections: %w", err)
		}
	}

	for _, sec := range form.Sections {
		sectionID := domain.NewID()
		if sec.ID != nil && *sec.ID != "" {
			sectionID = *sec.ID
		}
		query := `INSERT INTO sections (id, visit_id, title, ord) VALUES (?, ?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, query, sectionID, visitID, sec.Title, sec.Order); err != nil {
			return "", fmt.Errorf("inserting section %q: %w", sec.Title, err)
		}

		for _, f := range sec.Fields {
			fieldID := domain.NewID()
			if f.ID != nil && *f.ID != "" {
				fieldID = *f.ID
			}
			settingsJSON, err := json.Marshal(f.Settings)
			if err != nil {
				return "", fmt.Errorf("encoding settings for field %q: %w", f.Name, err)
			}
			required := false
			if f.IsRequired != nil {
				required = bool(*f.IsRequired)
			}
			description := ""
			if f.Description != nil {
				description = *f.Description
			}
			query := `INSERT INTO fields
				(id, section_id, name, label, field_type, ord, is_required, description, help_text, help_image, settings)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			_, err = r.db.ExecContext(ctx, query,
				fieldID, sectionID, f.Name, f.Label, f.FieldType, f.Order,
				boolToInt(required), description, f.HelpText, f.HelpImage, string(settingsJSON))
			if err != nil {
				return "", fmt.Errorf("inserting field %q: %w", f.Name, err)
			}
		}
	}

	return visitID, nil
}

func (r *SQLiteFormRepo) DeleteVisit(ctx context.Context, visitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = ?`, visitID); err != nil {
		return fmt.Errorf("deleting visit: %w", err)
	}
	return nil
}

func (r *SQLiteFormRepo) ListVisits(ctx context.Context, studyID string) ([]wire.Form, error) {
	query := `SELECT id, title, ord, is_hidden FROM visits WHERE study_id = ? ORDER BY ord`
	rows, err := r.db.QueryContext(ctx, query, studyID)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var forms []wire.Form
	for rows.Next() {
		var form wire.Form
		var id string
		var hidden int
		if err := rows.Scan(&id, &form.Title, &form.Order, &hidden); err != nil {
			return nil, fmt.Errorf("scanning visit row: %w", err)
		}
		form.ID = &id
		form.IsHidden = intToBool(hidden)
		forms = append(forms, form)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	for i := range forms {
		sections, err := r.loadSections(ctx, *forms[i].ID)
		if err != nil {
			return nil, err
		}
		forms[i].Sections = sections
	}
	return forms, nil
}

func (r *SQLiteFormRepo) loadSections(ctx context.Context, visitID string) ([]wire.Section, error) {
	query := `SELECT id, title, ord FROM sections WHERE visit_id = ? ORDER BY ord`
	rows, err := r.db.QueryContext(ctx, query, visitID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	sections := []wire.Section{}
	for rows.Next() {
		var sec wire.Section
		var id string
		if err := rows.Scan(&id, &sec.Title, &sec.Order); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		sec.ID = &id
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}

	for i := range sections {
		fields, err := r.loadFields(ctx, *sections[i].ID)
		if err != nil {
			return nil, err
		}
		sections[i].Fields = fields
	}
	return sections, nil
}

func (r *SQLiteFormRepo) loadFields(ctx context.Context, sectionID string) ([]wire.Field, error) {
	query := `SELECT id, name, label, field_type, ord, is_required, description, help_text, help_image, settings
		FROM fields WHERE section_id = ? ORDER BY ord`
	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}
	defer rows.Close()

	fields := []wire.Field{}
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fields: %w", err)
	}
	return fields, nil
}

func scanField(rows *sql.Rows) (wire.Field, error) {
	var f wire.Field
	var id, description, settingsJSON string
	var required int
	err := rows.Scan(&id, &f.Name, &f.Label, &f.FieldType, &f.Order,
		&required, &description, &f.HelpText, &f.HelpImage, &settingsJSON)
	if err != nil {
		return f, fmt.Errorf("scanning field row: %w", err)
	}
	f.ID = &id
	isRequired := wire.FlexBool(intToBool(required))
	f.IsRequired = &isRequired
	if description != "" {
		f.Description = &description
	}
	// A corrupt settings blob is repaired to defaults rather than
	// failing the load; the builder must never refuse to open a form.
	if err := json.Unmarshal([]byte(settingsJSON), &f.Settings); err != nil {
		f.Settings = wire.FieldSettings{}
	}
	f.Options = f.Settings.Options
	return f, nil
}
