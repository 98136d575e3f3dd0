package util

import (
	"bytes"
	"io"

	"github.com/disintegration/imaging"
)

// ThumbnailWidth 封面缩略图宽度
const ThumbnailWidth = 480

// MakeThumbnail 解码封面图并按固定宽度等比缩放，输出 JPEG
func MakeThumbnail(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
