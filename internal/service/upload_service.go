package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/journeycircle/api/internal/client"
	"github.com/journeycircle/api/internal/model"
)

// UploadService handles reference asset uploads
type UploadService struct {
	storage client.StorageClient
}

// NewUploadService creates the upload service. storage may be nil; uploads
// then get a placeholder URL so the wizard stays walkable in development.
func NewUploadService(storage client.StorageClient) *UploadService {
	return &UploadService{storage: storage}
}

// UploadReferenceAsset stores an uploaded file and returns the session entry
// describing it.
func (s *UploadService) UploadReferenceAsset(ctx context.Context, sessionID, filename, contentType string, file io.Reader, size int64) (*model.UploadedAsset, error) {
	assetID := uuid.New().String()
	ext := strings.ToLower(path.Ext(filename))

	var fileURL string
	if s.storage == nil {
		fileURL = fmt.Sprintf("https://assets.journeycircle.local/%s", client.ReferenceAssetKey(sessionID, assetID, ext))
	} else {
		url, err := s.storage.Upload(ctx, client.ReferenceAssetKey(sessionID, assetID, ext), file, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload reference asset: %w", err)
		}
		fileURL = url
	}

	return &model.UploadedAsset{
		ID:       assetID,
		Type:     model.UploadedAssetFile,
		Name:     filename,
		Size:     size,
		MimeType: contentType,
		Value:    fileURL,
		AddedAt:  time.Now(),
	}, nil
}

// AddHTMLContent records an inline HTML snippet as a reference asset. No
// object storage involved; the content lives in the session.
func (s *UploadService) AddHTMLContent(name, content string) (*model.UploadedAsset, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}
	return &model.UploadedAsset{
		ID:      uuid.New().String(),
		Type:    model.UploadedAssetHTML,
		Name:    name,
		Content: content,
		AddedAt: time.Now(),
	}, nil
}

// DeleteReferenceAsset removes the stored object. Best-effort: the session
// entry is the source of truth and is removed by the caller regardless.
func (s *UploadService) DeleteReferenceAsset(ctx context.Context, sessionID string, asset *model.UploadedAsset) {
	if s.storage == nil || asset.Type != model.UploadedAssetFile {
		return
	}
	ext := strings.ToLower(path.Ext(asset.Name))
	if err := s.storage.Delete(ctx, client.ReferenceAssetKey(sessionID, asset.ID, ext)); err != nil {
		log.Printf("Failed to delete reference asset %s: %v", asset.ID, err)
	}
}
