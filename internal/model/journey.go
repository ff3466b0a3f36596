package model

import "time"

// ServiceArea is a market the operator runs campaigns for
type ServiceArea struct {
	ID        int64     `json:"id" db:"id"`
	ClientID  int64     `json:"clientId" db:"client_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// JourneyCircle groups one service area's problems, solutions and assets.
// At most one circle exists per service area (unique constraint).
type JourneyCircle struct {
	ID            int64     `json:"id" db:"id"`
	ServiceAreaID int64     `json:"serviceAreaId" db:"service_area_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Problem is a stored problem title attached to a journey circle
type Problem struct {
	ID              int64     `json:"id" db:"id"`
	JourneyCircleID int64     `json:"journeyCircleId" db:"journey_circle_id"`
	Title           string    `json:"title" db:"title"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Asset is a journey_assets row: one per (linked item, format). Revisions
// mutate the row in place; status only ever moves forward.
type Asset struct {
	ID           int64        `json:"id" db:"id"`
	JourneyCircleID int64     `json:"journeyCircleId" db:"journey_circle_id"`
	LinkedToType LinkedToType `json:"linkedToType" db:"linked_to_type"`
	LinkedToID   int64        `json:"linkedToId" db:"linked_to_id"`
	AssetType    AssetType    `json:"assetType" db:"asset_type"`
	Title        string       `json:"title" db:"title"`
	Outline      string       `json:"outline" db:"outline"`
	Content      string       `json:"content" db:"content"`
	Status       AssetStatus  `json:"status" db:"status"`
	PublishedURL string       `json:"publishedUrl" db:"published_url"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// CreateServiceAreaRequest creates a service area (and its journey circle)
type CreateServiceAreaRequest struct {
	ClientID int64  `json:"clientId" validate:"required"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// CreateServiceAreaResponse returns the area plus its 1:1 circle
type CreateServiceAreaResponse struct {
	ServiceArea   *ServiceArea   `json:"serviceArea"`
	JourneyCircle *JourneyCircle `json:"journeyCircle"`
}

// AssetURLsRequest links published URLs back to a problem (best-effort sync)
type AssetURLsRequest struct {
	AssetURLs []string `json:"asset_urls" validate:"required,min=1,dive,min=1"`
}
