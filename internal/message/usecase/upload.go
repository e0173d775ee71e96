package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"blognest-api/internal/message"
	"blognest-api/internal/model"
	pkgMinio "blognest-api/pkg/minio"

	"github.com/google/uuid"
)

const presignedURLExpiry = 7 * 24 * time.Hour

var allowedMediaContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"video/mp4":  {},
	"video/webm": {},
}

// UploadMedia stores the attachment under a per-user prefix and returns
// a presigned download URL the client sends back through SendMedia.
func (uc *implUsecase) UploadMedia(ctx context.Context, sc model.Scope, ip message.UploadMediaInput) (message.UploadMediaOutput, error) {
	if ip.Reader == nil || ip.FileName == "" {
		return message.UploadMediaOutput{}, message.ErrFieldRequired
	}
	if _, ok := allowedMediaContentTypes[strings.ToLower(ip.ContentType)]; !ok {
		return message.UploadMediaOutput{}, message.ErrUnsupportedMediaType
	}

	objectName := fmt.Sprintf("chat-media/%s/%s%s",
		sc.UserID, uuid.NewString(), strings.ToLower(filepath.Ext(ip.FileName)))

	if _, err := uc.storage.UploadFile(ctx, &pkgMinio.UploadRequest{
		BucketName:   uc.bucket,
		ObjectName:   objectName,
		OriginalName: ip.FileName,
		Reader:       ip.Reader,
		Size:         ip.Size,
		ContentType:  ip.ContentType,
	}); err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.UploadMedia.UploadFile: %v", err)
		return message.UploadMediaOutput{}, err
	}

	presigned, err := uc.storage.GetPresignedDownloadURL(ctx, &pkgMinio.PresignedURLRequest{
		BucketName: uc.bucket,
		ObjectName: objectName,
		Expiry:     presignedURLExpiry,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.message.usecase.UploadMedia.GetPresignedDownloadURL: %v", err)
		return message.UploadMediaOutput{}, err
	}

	return message.UploadMediaOutput{URL: presigned.URL}, nil
}
