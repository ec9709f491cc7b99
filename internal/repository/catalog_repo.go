package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"star-catalog-api/internal/model"
)

// CatalogRepository serves the read-only reference entities. Writes
// exist only for the seeding CLI.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListPeople(ctx context.Context) ([]model.Person, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, height, mass FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	people := make([]model.Person, 0)
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Height, &p.Mass); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (r *CatalogRepository) GetPerson(ctx context.Context, id int64) (model.Person, error) {
	var p model.Person
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, height, mass FROM people WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Height, &p.Mass)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Person{}, model.ErrPersonNotFound
	}
	if err != nil {
		return model.Person{}, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

func (r *CatalogRepository) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, climate, gravity, population FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list planets: %w", err)
	}
	defer rows.Close()

	planets := make([]model.Planet, 0)
	for rows.Next() {
		var p model.Planet
		if err := rows.Scan(&p.ID, &p.Name, &p.Climate, &p.Gravity, &p.Population); err != nil {
			return nil, fmt.Errorf("scan planet: %w", err)
		}
		planets = append(planets, p)
	}
	return planets, rows.Err()
}

func (r *CatalogRepository) GetPlanet(ctx context.Context, id int64) (model.Planet, error) {
	var p model.Planet
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, climate, gravity, population FROM planets WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Climate, &p.Gravity, &p.Population)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Planet{}, model.ErrPlanetNotFound
	}
	if err != nil {
		return model.Planet{}, fmt.Errorf("get planet: %w", err)
	}
	return p, nil
}

func (r *CatalogRepository) InsertPerson(ctx context.Context, p model.Person) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO people (name, height, mass) VALUES ($1, $2, $3)`,
		p.Name, p.Height, p.Mass)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *CatalogRepository) InsertPlanet(ctx context.Context, p model.Planet) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO planets (name, climate, gravity, population) VALUES ($1, $2, $3, $4)`,
		p.Name, p.Climate, p.Gravity, p.Population)
	if err != nil {
		return fmt.Errorf("insert planet: %w", err)
	}
	return nil
}
