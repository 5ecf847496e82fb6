package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movira/vehicle_rental_app/internal/apperrors"
	"github.com/movira/vehicle_rental_app/internal/core/domain"
	portsrepo "github.com/movira/vehicle_rental_app/internal/core/ports/repositories"
	"github.com/movira/vehicle_rental_app/internal/models"
	"github.com/movira/vehicle_rental_app/internal/utils/mapping"
	"github.com/movira/vehicle_rental_app/internal/utils/pagination"
)

type PgxVehicleRepository struct {
	BaseRepository
}

// newPgxVehicleRepository creates a new repository for vehicle data.
func newPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleRepositoryFacade {
	return &PgxVehicleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVehicleRepository implements portsrepo.VehicleRepositoryFacade
var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

const vehicleColumns = `vehicle_id, owner_id, make, model, year, plate_number, daily_rate, availability,
	created_at, created_by, last_updated_at, last_updated_by`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var m models.Vehicle
	err := row.Scan(
		&m.VehicleID,
		&m.OwnerID,
		&m.Make,
		&m.Model,
		&m.Year,
		&m.PlateNumber,
		&m.DailyRate,
		&m.Availability,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveVehicle inserts a new vehicle.
func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	m := mapping.ToModelVehicle(vehicle)

	query := `
		INSERT INTO vehicles (vehicle_id, owner_id, make, model, year, plate_number, daily_rate, availability, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VehicleID,
		m.OwnerID,
		m.Make,
		m.Model,
		m.Year,
		m.PlateNumber,
		m.DailyRate,
		m.Availability,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: vehicle with plate %s already registered", apperrors.ErrDuplicate, m.PlateNumber)
		}
		return apperrors.NewAppError(500, "failed to save vehicle "+m.VehicleID, err)
	}
	return nil
}

// FindVehicleByID retrieves a vehicle by its ID.
func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1;`

	m, err := scanVehicle(r.Pool.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find vehicle by ID "+vehicleID, err)
	}

	v := mapping.ToDomainVehicle(*m)
	return &v, nil
}

// FindVehicleByIDForUpdate loads a vehicle inside tx, holding a row lock
// until the surrounding transaction ends. This serializes the booking
// conflict check against concurrent booking attempts on the same vehicle.
func (r *PgxVehicleRepository) FindVehicleByIDForUpdate(ctx context.Context, tx pgx.Tx, vehicleID string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1 FOR UPDATE;`

	m, err := scanVehicle(tx.QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock vehicle "+vehicleID, err)
	}

	v := mapping.ToDomainVehicle(*m)
	return &v, nil
}

// UpdateVehicle updates catalog details of a vehicle (not availability).
func (r *PgxVehicleRepository) UpdateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	m := mapping.ToModelVehicle(vehicle)

	query := `
		UPDATE vehicles
		SET make = $2,
		    model = $3,
		    year = $4,
		    daily_rate = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE vehicle_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.VehicleID,
		m.Make,
		m.Model,
		m.Year,
		m.DailyRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update vehicle "+m.VehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("vehicle " + m.VehicleID + " not found for update")
	}
	return nil
}

// UpdateVehicleAvailability sets the availability state of a vehicle.
func (r *PgxVehicleRepository) UpdateVehicleAvailability(ctx context.Context, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE vehicles
		SET availability = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE vehicle_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, vehicleID, availability, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update availability for vehicle "+vehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("vehicle " + vehicleID + " not found for availability update")
	}
	return nil
}

// UpdateVehicleAvailabilityInTx sets availability using the caller's transaction.
func (r *PgxVehicleRepository) UpdateVehicleAvailabilityInTx(ctx context.Context, tx pgx.Tx, vehicleID string, availability domain.VehicleAvailability, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE vehicles
		SET availability = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE vehicle_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, vehicleID, availability, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update availability for vehicle "+vehicleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("vehicle " + vehicleID + " not found for availability update")
	}
	return nil
}

// ListVehicles retrieves a paginated list of vehicles using token-based pagination.
// Ordering is by created_at DESC with vehicle_id as a stable tie-breaker.
func (r *PgxVehicleRepository) ListVehicles(ctx context.Context, limit int, nextToken *string, onlyAvailable bool) ([]domain.Vehicle, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + vehicleColumns + ` FROM vehicles`
	filterClause := `WHERE availability != 'DEACTIVATED'`
	if onlyAvailable {
		filterClause = `WHERE availability = 'AVAILABLE'`
	}
	orderByClause := `ORDER BY created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND created_at < $1`
		args = append(args, lastCreatedAt)
		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query vehicles", err)
	}
	defer rows.Close()

	modelVehicles := make([]models.Vehicle, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanVehicle(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan vehicle row", scanErr)
		}
		modelVehicles = append(modelVehicles, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating vehicle rows", err)
	}

	var nextTokenVal *string
	results := modelVehicles
	if len(modelVehicles) > limit {
		lastVehicle := modelVehicles[limit-1]
		newToken := pagination.EncodeDateBasedToken(lastVehicle.CreatedAt)
		nextTokenVal = &newToken
		results = modelVehicles[:limit]
	}

	return mapping.ToDomainVehicleSlice(results), nextTokenVal, nil
}

// ListVehiclesByOwner retrieves all vehicles registered by one owner.
func (r *PgxVehicleRepository) ListVehiclesByOwner(ctx context.Context, ownerID string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vehicles for owner "+ownerID, err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		m, scanErr := scanVehicle(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vehicle row for owner "+ownerID, scanErr)
		}
		vehicles = append(vehicles, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vehicle rows for owner "+ownerID, err)
	}

	return mapping.ToDomainVehicleSlice(vehicles), nil
}
