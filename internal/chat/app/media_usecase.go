package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"social_network_service/internal/chat/domain"
	errprocess "social_network_service/pkg/err"

	"github.com/google/uuid"
)

// MaxMediaSize 單檔上限
const MaxMediaSize = 20 << 20

// ObjectStore 物件儲存, database.MinIOClient 實作
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// MediaUseCase 訊息附件上傳
type MediaUseCase struct {
	store  ObjectStore
	expiry time.Duration
}

// NewMediaUseCase presigned url 最長 7 天
func NewMediaUseCase(store ObjectStore, expiry time.Duration) *MediaUseCase {
	if expiry <= 0 || expiry > 7*24*time.Hour {
		expiry = 7 * 24 * time.Hour
	}
	return &MediaUseCase{store: store, expiry: expiry}
}

// Upload 上傳後回傳可直接放進 message media 的 url
func (uc *MediaUseCase) Upload(ctx context.Context, userID, fileName string, r io.Reader, size int64, contentType string) (domain.MediaResponse, error) {
	if size <= 0 {
		return domain.MediaResponse{}, errprocess.Wrap(errprocess.ErrValidation, "file is empty")
	}
	if size > MaxMediaSize {
		return domain.MediaResponse{}, errprocess.Wrap(errprocess.ErrValidation, "file exceeds %d bytes", MaxMediaSize)
	}

	object := ObjectName(userID, fileName)
	if err := uc.store.Upload(ctx, object, r, size, contentType); err != nil {
		return domain.MediaResponse{}, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "upload media: %v", err)
	}

	url, err := uc.store.PresignGetURL(ctx, object, uc.expiry)
	if err != nil {
		return domain.MediaResponse{}, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "presign media: %v", err)
	}
	return domain.MediaResponse{Media: url, Object: object}, nil
}

// ObjectName messages/<userID>/<uuid>-<name>
func ObjectName(userID, fileName string) string {
	name := strings.ReplaceAll(filepath.Base(fileName), " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	return fmt.Sprintf("messages/%s/%s-%s", userID, uuid.NewString(), name)
}
