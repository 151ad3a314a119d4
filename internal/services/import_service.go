package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nivaldeir/erp-easy-remote/internal/caching"
	"github.com/Nivaldeir/erp-easy-remote/internal/importer"
)

// ImportService runs CSV imports and archives the raw upload for audit.
type ImportService interface {
	ImportCSV(ctx context.Context, workspaceID uuid.UUID, filename, csvText string) (*importer.ImportResult, error)
}

type importService struct {
	importer   *importer.Importer
	storageSvc StorageService
	cacheSvc   caching.CacheService
	bucket     string
	now        func() time.Time
}

func NewImportService(imp *importer.Importer, storageSvc StorageService, cacheSvc caching.CacheService, bucket string) ImportService {
	return &importService{
		importer:   imp,
		storageSvc: storageSvc,
		cacheSvc:   cacheSvc,
		bucket:     bucket,
		now:        time.Now,
	}
}

func (s *importService) ImportCSV(ctx context.Context, workspaceID uuid.UUID, filename, csvText string) (*importer.ImportResult, error) {
	result, err := s.importer.Import(ctx, csvText, workspaceID)
	if err != nil {
		return result, err
	}

	// Archive failures never fail the import; the rows are already in.
	if s.storageSvc != nil {
		objectName := fmt.Sprintf("imports/%s/%s-%s", workspaceID.String(), s.now().Format("20060102T150405"), filename)
		reader := strings.NewReader(csvText)
		if archiveErr := s.storageSvc.Upload(ctx, s.bucket, objectName, reader, int64(len(csvText)), "text/csv"); archiveErr != nil {
			log.Printf("Failed to archive import file %s: %v", objectName, archiveErr)
		}
	}

	if invalidateErr := s.cacheSvc.InvalidateWorkspace(ctx, workspaceID); invalidateErr != nil {
		log.Printf("Failed to invalidate cache for workspace %s: %v", workspaceID.String(), invalidateErr)
	}

	return result, nil
}
