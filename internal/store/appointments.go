package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/model"
)

type AppointmentStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewAppointmentStore(db *sql.DB) *AppointmentStore {
	return &AppointmentStore{db: db, now: utcNow}
}

func scanAppointment(s scanner) (*model.Appointment, error) {
	var a model.Appointment
	var notes, patientName sql.NullString
	var providerID sql.NullInt64
	err := s.Scan(
		&a.ID, &a.Title, &a.Date, &a.Type, &notes, &providerID,
		&patientName, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Notes = stringPtr(notes)
	a.ProviderID = int64Ptr(providerID)
	a.PatientName = stringPtr(patientName)
	return &a, nil
}

const appointmentCols = `id, title, date, type, notes, provider_id, patient_name, created_by, created_at, updated_at`

// hydrateAppointment attaches the referenced provider, if any.
func hydrateAppointment(ctx context.Context, q querier, a *model.Appointment) error {
	if a.ProviderID == nil {
		return nil
	}
	p, err := getProvider(ctx, q, *a.ProviderID)
	if err != nil {
		return err
	}
	a.Provider = p
	return nil
}

func getAppointment(ctx context.Context, q querier, id int64) (*model.Appointment, error) {
	row := q.QueryRowContext(ctx, `SELECT `+appointmentCols+` FROM appointments WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Appointment with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if err := hydrateAppointment(ctx, q, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentStore) Create(ctx context.Context, in model.AppointmentCreate) (*model.Appointment, error) {
	var a *model.Appointment
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, userEntity, in.CreatedBy); err != nil {
			return err
		}
		if in.ProviderID != nil {
			if err := ensureExists(ctx, tx, providerEntity, *in.ProviderID); err != nil {
				return err
			}
		}

		now := s.now()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO appointments (title, date, type, notes, provider_id, patient_name, created_by, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			in.Title, in.Date.UTC(), in.Type, nullString(in.Notes), nullInt64(in.ProviderID),
			nullString(in.PatientName), in.CreatedBy, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		a, err = getAppointment(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	return getAppointment(ctx, s.db, id)
}

// List returns appointments matching every supplied filter, soonest first.
func (s *AppointmentStore) List(ctx context.Context, f model.AppointmentFilter) ([]model.Appointment, error) {
	var where []string
	var args []any
	if f.CreatedBy != nil {
		where = append(where, "created_by = ?")
		args = append(args, *f.CreatedBy)
	}
	if f.PatientName != nil {
		where = append(where, "patient_name = ?")
		args = append(args, *f.PatientName)
	}

	query := `SELECT ` + appointmentCols + ` FROM appointments`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	var appointments []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	providers := make(map[int64]*model.Provider)
	for i := range appointments {
		pid := appointments[i].ProviderID
		if pid == nil {
			continue
		}
		if p, ok := providers[*pid]; ok {
			appointments[i].Provider = p
			continue
		}
		if err := hydrateAppointment(ctx, s.db, &appointments[i]); err != nil {
			return nil, err
		}
		providers[*pid] = appointments[i].Provider
	}
	return appointments, nil
}

func (s *AppointmentStore) Update(ctx context.Context, id int64, u model.AppointmentUpdate) (*model.Appointment, error) {
	var a *model.Appointment
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, appointmentEntity, id); err != nil {
			return err
		}
		if u.ProviderID != nil {
			if err := ensureExists(ctx, tx, providerEntity, *u.ProviderID); err != nil {
				return err
			}
		}

		var set updateSet
		if u.Title != nil {
			set.add("title", *u.Title)
		}
		if u.Date != nil {
			set.add("date", u.Date.UTC())
		}
		if u.Type != nil {
			set.add("type", *u.Type)
		}
		if u.Notes != nil {
			set.add("notes", *u.Notes)
		}
		if u.ProviderID != nil {
			set.add("provider_id", *u.ProviderID)
		}
		if u.PatientName != nil {
			set.add("patient_name", *u.PatientName)
		}
		if err := set.exec(ctx, tx, "appointments", id, s.now()); err != nil {
			return err
		}

		var err error
		a, err = getAppointment(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, appointmentEntity, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		return nil
	})
}
