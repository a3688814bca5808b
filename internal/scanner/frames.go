package scanner

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// FileFrameSource treats an image file as the camera feed: the file is
// re-read on every capture, so overwriting it supplies new frames.
type FileFrameSource struct {
	Path string
}

func (f *FileFrameSource) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open frame file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame file: %w", err)
	}
	return img, nil
}
