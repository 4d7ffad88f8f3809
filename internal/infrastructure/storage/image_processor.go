package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
)

const (
	AvatarSize  = 256
	JPEGQuality = 85
)

// AvatarProcessor crops uploads to a centered square, scales them to the
// avatar size and re-encodes as JPEG, so every stored avatar has the same
// shape and format regardless of what the client sent.
type AvatarProcessor struct {
	size    int
	quality int
}

func NewAvatarProcessor() *AvatarProcessor {
	return &AvatarProcessor{
		size:    AvatarSize,
		quality: JPEGQuality,
	}
}

func (p *AvatarProcessor) Process(reader io.Reader) (io.Reader, int64, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding image: %w", err)
	}

	img = imaging.Fill(img, p.size, p.size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, 0, fmt.Errorf("encoding jpeg: %w", err)
	}

	return bytes.NewReader(buf.Bytes()), int64(buf.Len()), nil
}
