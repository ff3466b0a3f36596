package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/journeycircle/api/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS service_areas (
	id         BIGSERIAL PRIMARY KEY,
	client_id  BIGINT NOT NULL,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS journey_circles (
	id              BIGSERIAL PRIMARY KEY,
	service_area_id BIGINT NOT NULL UNIQUE REFERENCES service_areas(id),
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS problems (
	id                BIGINT PRIMARY KEY,
	journey_circle_id BIGINT NOT NULL REFERENCES journey_circles(id),
	title             TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS journey_assets (
	id                BIGSERIAL PRIMARY KEY,
	journey_circle_id BIGINT NOT NULL REFERENCES journey_circles(id),
	linked_to_type    TEXT NOT NULL,
	linked_to_id      BIGINT NOT NULL,
	asset_type        TEXT NOT NULL,
	title             TEXT NOT NULL DEFAULT '',
	outline           TEXT NOT NULL DEFAULT '',
	content           TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'outline',
	published_url     TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (journey_circle_id, linked_to_type, linked_to_id, asset_type)
);
`

// NewPostgresStore connects via the pgx stdlib driver and prepares the schema
func NewPostgresStore(url string) (*Store, error) {
	db, err := sqlx.Connect("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	return &Store{
		ServiceAreas: &pgServiceAreaRepo{db: db},
		Circles:      &pgCircleRepo{db: db},
		Problems:     &pgProblemRepo{db: db},
		Assets:       &pgAssetRepo{db: db},
	}, nil
}

type pgServiceAreaRepo struct {
	db *sqlx.DB
}

func (r *pgServiceAreaRepo) Create(ctx context.Context, clientID int64, name string) (*model.ServiceArea, error) {
	var area model.ServiceArea
	err := r.db.GetContext(ctx, &area,
		`INSERT INTO service_areas (client_id, name) VALUES ($1, $2)
		 RETURNING id, client_id, name, created_at`,
		clientID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create service area: %w", err)
	}
	return &area, nil
}

func (r *pgServiceAreaRepo) Get(ctx context.Context, id int64) (*model.ServiceArea, error) {
	var area model.ServiceArea
	err := r.db.GetContext(ctx, &area,
		`SELECT id, client_id, name, created_at FROM service_areas WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *pgServiceAreaRepo) List(ctx context.Context, clientID int64) ([]model.ServiceArea, error) {
	areas := []model.ServiceArea{}
	err := r.db.SelectContext(ctx, &areas,
		`SELECT id, client_id, name, created_at FROM service_areas
		 WHERE client_id = $1 ORDER BY created_at`, clientID)
	if err != nil {
		return nil, err
	}
	return areas, nil
}

type pgCircleRepo struct {
	db *sqlx.DB
}

func (r *pgCircleRepo) EnsureForServiceArea(ctx context.Context, serviceAreaID int64) (*model.JourneyCircle, bool, error) {
	// INSERT .. ON CONFLICT DO NOTHING plus a follow-up SELECT keeps
	// check-then-create race-free across tabs.
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO journey_circles (service_area_id) VALUES ($1)
		 ON CONFLICT (service_area_id) DO NOTHING`, serviceAreaID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure journey circle: %w", err)
	}
	created := false
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		created = true
	}

	var circle model.JourneyCircle
	err = r.db.GetContext(ctx, &circle,
		`SELECT id, service_area_id, created_at FROM journey_circles
		 WHERE service_area_id = $1`, serviceAreaID)
	if err != nil {
		return nil, false, err
	}
	return &circle, created, nil
}

func (r *pgCircleRepo) Get(ctx context.Context, id int64) (*model.JourneyCircle, error) {
	var circle model.JourneyCircle
	err := r.db.GetContext(ctx, &circle,
		`SELECT id, service_area_id, created_at FROM journey_circles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &circle, nil
}

type pgProblemRepo struct {
	db *sqlx.DB
}

func (r *pgProblemRepo) SaveSelected(ctx context.Context, circleID int64, problems []model.SelectedProblem) error {
	for _, p := range problems {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO problems (id, journey_circle_id, title) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title`,
			p.ID, circleID, p.Title)
		if err != nil {
			return fmt.Errorf("failed to save problem %d: %w", p.ID, err)
		}
	}
	return nil
}

func (r *pgProblemRepo) List(ctx context.Context, circleID int64) ([]model.Problem, error) {
	problems := []model.Problem{}
	err := r.db.SelectContext(ctx, &problems,
		`SELECT id, journey_circle_id, title, created_at FROM problems
		 WHERE journey_circle_id = $1 ORDER BY created_at`, circleID)
	if err != nil {
		return nil, err
	}
	return problems, nil
}

type pgAssetRepo struct {
	db *sqlx.DB
}

func (r *pgAssetRepo) CreateIfAbsent(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journey_assets
		   (journey_circle_id, linked_to_type, linked_to_id, asset_type, title, outline, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (journey_circle_id, linked_to_type, linked_to_id, asset_type) DO NOTHING`,
		asset.JourneyCircleID, asset.LinkedToType, asset.LinkedToID, asset.AssetType,
		asset.Title, asset.Outline, model.AssetStatusOutline)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	var row model.Asset
	err = r.db.GetContext(ctx, &row,
		`SELECT * FROM journey_assets
		 WHERE journey_circle_id = $1 AND linked_to_type = $2 AND linked_to_id = $3 AND asset_type = $4`,
		asset.JourneyCircleID, asset.LinkedToType, asset.LinkedToID, asset.AssetType)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *pgAssetRepo) Get(ctx context.Context, id int64) (*model.Asset, error) {
	var asset model.Asset
	err := r.db.GetContext(ctx, &asset, `SELECT * FROM journey_assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *pgAssetRepo) UpdateOutline(ctx context.Context, id int64, outline, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE journey_assets SET outline = $1,
		   title = CASE WHEN $2 <> '' THEN $2 ELSE title END,
		   updated_at = now()
		 WHERE id = $3`, outline, title, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgAssetRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE journey_assets SET content = $1, status = $2, updated_at = now()
		 WHERE id = $3 AND status IN ($4, $5)`,
		content, model.AssetStatusDraft, id, model.AssetStatusOutline, model.AssetStatusDraft)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgAssetRepo) Approve(ctx context.Context, id int64) (*model.Asset, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE journey_assets SET status = $1, updated_at = now()
		 WHERE id = $2 AND status IN ($3, $4)`,
		model.AssetStatusApproved, id, model.AssetStatusDraft, model.AssetStatusOutline)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either missing or already approved/published
		asset, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: asset %d is %s", ErrInvalidTransition, id, asset.Status)
	}
	return r.Get(ctx, id)
}

func (r *pgAssetRepo) SetPublishedURL(ctx context.Context, id int64, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE journey_assets SET published_url = $1, status = $2, updated_at = now()
		 WHERE id = $3 AND status IN ($4, $5)`,
		url, model.AssetStatusPublished, id, model.AssetStatusApproved, model.AssetStatusPublished)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgAssetRepo) ListByLinked(ctx context.Context, linkedType model.LinkedToType, linkedID int64) ([]model.Asset, error) {
	assets := []model.Asset{}
	err := r.db.SelectContext(ctx, &assets,
		`SELECT * FROM journey_assets
		 WHERE linked_to_type = $1 AND linked_to_id = $2 ORDER BY created_at`,
		linkedType, linkedID)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
