package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eviden-bot/internal/dto"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/blob"
	"eviden-bot/internal/pkg/logger"
)

const (
	evidenceContentType = "image/jpeg"
	// Bot API downloads are capped at 20 MB.
	maxEvidenceBytes = 20 << 20
)

// FileLocator resolves chat attachment handles to downloadable URLs.
type FileLocator interface {
	FileURL(ctx context.Context, fileId string) (string, error)
}

// EvidenceHints are the values that name the stored object.
type EvidenceHints struct {
	SegmentName    string
	DesignatorCode string
	UserId         int64
	At             time.Time
}

type IEvidenceService interface {
	// Upload stores the best photo variant and returns its public URL.
	Upload(ctx context.Context, photos []dto.PhotoVariant, hints EvidenceHints) (string, error)
}

type evidenceService struct {
	files      FileLocator
	store      blob.Store
	httpClient *http.Client
	folder     string
	logger     logger.ILogger
}

func NewEvidenceService(files FileLocator, store blob.Store, httpClient *http.Client, folder string, logger logger.ILogger) IEvidenceService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &evidenceService{
		files:      files,
		store:      store,
		httpClient: httpClient,
		folder:     folder,
		logger:     logger,
	}
}

func (s *evidenceService) Upload(ctx context.Context, photos []dto.PhotoVariant, hints EvidenceHints) (string, error) {
	photo, ok := LargestPhoto(photos)
	if !ok {
		return "", apperror.NewFetchFailed(errors.New("message carries no photo"))
	}

	fileURL, err := s.files.FileURL(ctx, photo.FileId)
	if err != nil {
		s.logger.Error("EVIDENCE", "Failed to resolve file URL", map[string]interface{}{"file_id": photo.FileId, "error": err.Error()})
		return "", apperror.NewFetchFailed(err)
	}

	path := EvidencePath(s.folder, hints.SegmentName, hints.DesignatorCode, hints.At, hints.UserId)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", apperror.NewFetchFailed(err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("EVIDENCE", "Failed to download photo", map[string]interface{}{"file_id": photo.FileId, "error": err.Error()})
		return "", apperror.NewFetchFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("EVIDENCE", "Photo download returned non-2xx", map[string]interface{}{"file_id": photo.FileId, "status": resp.StatusCode})
		return "", apperror.NewFetchFailed(fmt.Errorf("download status %d", resp.StatusCode))
	}

	// The whole photo is read before anything reaches the store, so a broken download never
	// leaves a truncated object behind.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxEvidenceBytes+1))
	if err != nil {
		s.logger.Error("EVIDENCE", "Photo download interrupted", map[string]interface{}{"file_id": photo.FileId, "error": err.Error()})
		return "", apperror.NewFetchFailed(err)
	}
	if len(data) > maxEvidenceBytes {
		s.logger.Error("EVIDENCE", "Photo exceeds size limit", map[string]interface{}{"file_id": photo.FileId, "limit": maxEvidenceBytes})
		return "", apperror.NewFetchFailed(fmt.Errorf("photo larger than %d bytes", maxEvidenceBytes))
	}

	if err := s.store.Put(ctx, path, evidenceContentType, bytes.NewReader(data)); err != nil {
		if errors.Is(err, blob.ErrObjectExists) {
			s.logger.Warn("EVIDENCE", "Evidence object already exists", map[string]interface{}{"path": path})
			return "", apperror.NewUploadConflict(path)
		}
		s.logger.Error("EVIDENCE", "Failed to store photo", map[string]interface{}{"path": path, "error": err.Error()})
		return "", apperror.NewUploadFailed(path, err)
	}

	publicURL := s.store.PublicURL(path)
	s.logger.Info("EVIDENCE", "Photo stored", map[string]interface{}{
		"user_id": hints.UserId,
		"path":    path,
		"width":   photo.Width,
		"height":  photo.Height,
	})
	return publicURL, nil
}

// LargestPhoto picks the variant with the most pixels. Ties go to the larger file, then to the later entry.
func LargestPhoto(photos []dto.PhotoVariant) (dto.PhotoVariant, bool) {
	if len(photos) == 0 {
		return dto.PhotoVariant{}, false
	}
	best := photos[0]
	for _, p := range photos[1:] {
		bestArea, area := best.Width*best.Height, p.Width*p.Height
		if area > bestArea || (area == bestArea && p.FileSize >= best.FileSize) {
			best = p
		}
	}
	return best, true
}

// EvidencePath builds <folder>/<segment>/<designator>/<unix_millis>_<user>.jpg.
// The folder may be nested. A "/" inside the segment or designator becomes "-" so catalog names
// cannot add directory levels.
func EvidencePath(folder, segmentName, designatorCode string, at time.Time, userId int64) string {
	return fmt.Sprintf("%s/%s/%s/%d_%d.jpg",
		strings.Trim(strings.TrimSpace(folder), "/"),
		pathComponent(segmentName),
		pathComponent(designatorCode),
		at.UnixMilli(),
		userId,
	)
}

func pathComponent(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
}
