package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"

	"github.com/adendl/traveljournalai/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips and their plan graphs.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the orchestrator to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a trip shell (no plans, status pending) and returns the
	// persisted record with DB-generated id and created_at populated.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip row by primary key. Plans are not
	// loaded. Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips owned by the user ordered by created_at
	// descending, each with its full plan graph loaded (plans → days → places
	// of interest, back-references wired).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// SavePlan atomically persists the whole plan graph and flips the owning
	// trip's status to complete. plan.Trip must be set. Generated IDs are
	// written back into the graph.
	SavePlan(ctx context.Context, plan *domain.TripPlan) error

	// SetStatus updates the trip's generation status.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error

	// Delete removes a trip by ID; plans, day plans, and places of interest
	// cascade. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, from_city, to_city, roundtrip, days, interests, distance_km, status)
		VALUES (@user_id, @from_city, @to_city, @roundtrip, @days, @interests, @distance_km, @status)
		RETURNING id, user_id, from_city, to_city, roundtrip, days, interests, distance_km, status, created_at`

	if trip.Status == "" {
		trip.Status = domain.TripStatusPending
	}
	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"from_city":   trip.FromCity,
		"to_city":     trip.ToCity,
		"roundtrip":   trip.Roundtrip,
		"days":        trip.Days,
		"interests":   trip.Interests,
		"distance_km": trip.DistanceKm,
		"status":      string(trip.Status),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, user_id, from_city, to_city, roundtrip, days, interests, distance_km, status, created_at
		FROM trips
		WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT id, user_id, from_city, to_city, roundtrip, days, interests, distance_km, status, created_at
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	if err := r.loadPlans(ctx, trips); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) SavePlan(ctx context.Context, plan *domain.TripPlan) error {
	if plan == nil || plan.Trip == nil {
		return fmt.Errorf("repo.TripRepo.SavePlan: plan has no owning trip")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SavePlan: begin: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	const insertPlan = `
		INSERT INTO trip_plans (trip_id)
		VALUES (@trip_id)
		RETURNING id`
	var planID pgtype.UUID
	if err := tx.QueryRow(ctx, insertPlan, pgx.NamedArgs{"trip_id": plan.Trip.ID}).Scan(&planID); err != nil {
		return fmt.Errorf("repo.TripRepo.SavePlan: insert plan: %w", err)
	}
	plan.ID = uuid.UUID(planID.Bytes)

	const insertDay = `
		INSERT INTO day_plans (trip_plan_id, day_number,
			start_name, start_latitude, start_longitude,
			finish_name, finish_latitude, finish_longitude,
			distance_km, introduction)
		VALUES (@trip_plan_id, @day_number,
			@start_name, @start_latitude, @start_longitude,
			@finish_name, @finish_latitude, @finish_longitude,
			@distance_km, @introduction)
		RETURNING id`
	const insertPOI = `
		INSERT INTO places_of_interest (day_plan_id, position, name, description, latitude, longitude)
		VALUES (@day_plan_id, @position, @name, @description, @latitude, @longitude)
		RETURNING id`

	for _, day := range plan.Days {
		var dayID pgtype.UUID
		args := pgx.NamedArgs{
			"trip_plan_id":     plan.ID,
			"day_number":       day.DayNumber,
			"start_name":       day.StartLocation.Name,
			"start_latitude":   day.StartLocation.Latitude,
			"start_longitude":  day.StartLocation.Longitude,
			"finish_name":      day.FinishLocation.Name,
			"finish_latitude":  day.FinishLocation.Latitude,
			"finish_longitude": day.FinishLocation.Longitude,
			"distance_km":      day.DistanceKm,
			"introduction":     day.Introduction,
		}
		if err := tx.QueryRow(ctx, insertDay, args).Scan(&dayID); err != nil {
			return fmt.Errorf("repo.TripRepo.SavePlan: insert day %d: %w", day.DayNumber, err)
		}
		day.ID = uuid.UUID(dayID.Bytes)

		for i, poi := range day.PlacesOfInterest {
			var poiID pgtype.UUID
			args := pgx.NamedArgs{
				"day_plan_id": day.ID,
				"position":    i,
				"name":        poi.Name,
				"description": poi.Description,
				"latitude":    poi.Latitude,
				"longitude":   poi.Longitude,
			}
			if err := tx.QueryRow(ctx, insertPOI, args).Scan(&poiID); err != nil {
				return fmt.Errorf("repo.TripRepo.SavePlan: insert poi: %w", err)
			}
			poi.ID = uuid.UUID(poiID.Bytes)
		}
	}

	const flipStatus = `UPDATE trips SET status = @status WHERE id = @id`
	tag, err := tx.Exec(ctx, flipStatus, pgx.NamedArgs{
		"id":     plan.Trip.ID,
		"status": string(domain.TripStatusComplete),
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SavePlan: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SavePlan: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.SavePlan: commit: %w", err)
	}
	return nil
}

func (r *pgTripRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.TripStatus) error {
	const q = `UPDATE trips SET status = @status WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetStatus: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// loadPlans attaches the full plan graph to every trip in trips, with
// navigation back-references wired. Three queries regardless of trip count.
func (r *pgTripRepo) loadPlans(ctx context.Context, trips []domain.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	tripIDs := make([]uuid.UUID, len(trips))
	tripByID := make(map[uuid.UUID]*domain.Trip, len(trips))
	for i := range trips {
		trips[i].TripPlans = []*domain.TripPlan{}
		tripIDs[i] = trips[i].ID
		tripByID[trips[i].ID] = &trips[i]
	}

	const plansQ = `
		SELECT id, trip_id
		FROM trip_plans
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY created_at`
	rows, err := r.db.Query(ctx, plansQ, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	planByID := make(map[uuid.UUID]*domain.TripPlan)
	for rows.Next() {
		var planID, tripID pgtype.UUID
		if err := rows.Scan(&planID, &tripID); err != nil {
			rows.Close()
			return fmt.Errorf("scan plan: %w", err)
		}
		trip := tripByID[uuid.UUID(tripID.Bytes)]
		plan := &domain.TripPlan{ID: uuid.UUID(planID.Bytes), Trip: trip, Days: []*domain.DayPlan{}}
		trip.TripPlans = append(trip.TripPlans, plan)
		planByID[plan.ID] = plan
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("plan rows: %w", err)
	}
	if len(planByID) == 0 {
		return nil
	}
	planIDs := lo.Keys(planByID)

	const daysQ = `
		SELECT id, trip_plan_id, day_number,
			start_name, start_latitude, start_longitude,
			finish_name, finish_latitude, finish_longitude,
			distance_km, introduction
		FROM day_plans
		WHERE trip_plan_id = ANY(@plan_ids)
		ORDER BY day_number`
	rows, err = r.db.Query(ctx, daysQ, pgx.NamedArgs{"plan_ids": planIDs})
	if err != nil {
		return fmt.Errorf("load days: %w", err)
	}
	dayByID := make(map[uuid.UUID]*domain.DayPlan)
	for rows.Next() {
		var dayID, planID pgtype.UUID
		day := &domain.DayPlan{PlacesOfInterest: []*domain.PlaceOfInterest{}}
		err := rows.Scan(&dayID, &planID, &day.DayNumber,
			&day.StartLocation.Name, &day.StartLocation.Latitude, &day.StartLocation.Longitude,
			&day.FinishLocation.Name, &day.FinishLocation.Latitude, &day.FinishLocation.Longitude,
			&day.DistanceKm, &day.Introduction)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scan day: %w", err)
		}
		day.ID = uuid.UUID(dayID.Bytes)
		plan := planByID[uuid.UUID(planID.Bytes)]
		day.TripPlan = plan
		plan.Days = append(plan.Days, day)
		dayByID[day.ID] = day
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("day rows: %w", err)
	}
	if len(dayByID) == 0 {
		return nil
	}
	dayIDs := lo.Keys(dayByID)

	const poisQ = `
		SELECT id, day_plan_id, name, description, latitude, longitude
		FROM places_of_interest
		WHERE day_plan_id = ANY(@day_ids)
		ORDER BY position`
	rows, err = r.db.Query(ctx, poisQ, pgx.NamedArgs{"day_ids": dayIDs})
	if err != nil {
		return fmt.Errorf("load places of interest: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var poiID, dayID pgtype.UUID
		poi := &domain.PlaceOfInterest{}
		if err := rows.Scan(&poiID, &dayID, &poi.Name, &poi.Description, &poi.Latitude, &poi.Longitude); err != nil {
			return fmt.Errorf("scan poi: %w", err)
		}
		poi.ID = uuid.UUID(poiID.Bytes)
		day := dayByID[uuid.UUID(dayID.Bytes)]
		poi.DayPlan = day
		day.PlacesOfInterest = append(day.PlacesOfInterest, poi)
	}
	return rows.Err()
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		status string
	)
	err := s.Scan(&id, &userID, &t.FromCity, &t.ToCity, &t.Roundtrip, &t.Days,
		&t.Interests, &t.DistanceKm, &status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.Status = domain.TripStatus(status)
	if t.Interests == nil {
		t.Interests = []string{}
	}
	if t.TripPlans == nil {
		t.TripPlans = []*domain.TripPlan{}
	}
	return t, nil
}
