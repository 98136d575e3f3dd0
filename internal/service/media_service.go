package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"Inkwell/internal/pkg/minio"
	"Inkwell/internal/pkg/util"

	"github.com/google/uuid"
)

// MaxCoverSize 封面图大小上限
const MaxCoverSize = 8 << 20

var coverContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type MediaService interface {
	// UploadCover 上传封面原图并生成缩略图，返回两者的公开地址
	UploadCover(ctx context.Context, filename string, r io.Reader) (coverURL string, thumbURL string, err error)
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

func (s *mediaServiceImpl) UploadCover(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := coverContentTypes[ext]
	if !ok {
		return "", "", ErrFileNotSupported
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxCoverSize+1))
	if err != nil {
		return "", "", err
	}
	if len(data) == 0 || len(data) > MaxCoverSize {
		return "", "", ErrParamInvalid
	}

	thumb, err := util.MakeThumbnail(bytes.NewReader(data))
	if err != nil {
		// 解码失败说明内容与扩展名不符
		return "", "", ErrFileNotSupported
	}

	key := uuid.NewString()
	coverURL, err := minio.UploadBytes(ctx, fmt.Sprintf("covers/%s%s", key, ext), data, contentType)
	if err != nil {
		return "", "", err
	}
	thumbURL, err := minio.UploadBytes(ctx, fmt.Sprintf("covers/%s_thumb.jpg", key), thumb, "image/jpeg")
	if err != nil {
		return "", "", err
	}
	return coverURL, thumbURL, nil
}
