package minio

import (
	"bytes"
	"context"
	"fmt"

	"Inkwell/internal/api/config"

	"github.com/minio/minio-go/v7"
)

// UploadBytes 上传对象并返回可公开访问的地址
func UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := Client.PutObject(ctx, MediaBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return PublicURL(objectName), nil
}

// PublicURL 拼出对象的公开访问地址，CDN 域名在配置层处理
func PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", config.Cfg.MinIO.PublicBaseURL, MediaBucket, objectName)
}
