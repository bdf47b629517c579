package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrImageTooLarge      = errors.New("image exceeds maximum size")
	ErrInvalidImage       = errors.New("file is not an image")
	ErrUnsupportedFormat  = errors.New("image must be JPEG or PNG")
	ErrImageTooManyPixels = errors.New("image dimensions are too large")
)

const (
	defaultMaxPhotoBytes = int64(5 * 1024 * 1024)
	defaultMaxPhotoSide  = 1200
	defaultJPEGQuality   = 90
	defaultMaxPixels     = 40_000_000 // ~160 MB khi decode sang NRGBA
	photoContentType     = "image/jpeg"
	photoExtension       = "jpg"
)

type ImageProcessor struct {
	MaxSize int64 // bytes
	MaxSide int   // px, ảnh lớn hơn sẽ được fit vào MaxSide x MaxSide
	Quality int

	// MaxPixels giới hạn width*height trước khi decode: PNG nén tốt có thể
	// chỉ vài trăm KB nhưng cần nhiều GB RAM khi giải nén
	MaxPixels int64
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = defaultMaxPhotoBytes
	}
	return &ImageProcessor{
		MaxSize:   maxSize,
		MaxSide:   defaultMaxPhotoSide,
		Quality:   defaultJPEGQuality,
		MaxPixels: defaultMaxPixels,
	}
}

// ValidateImage: chỉ nhận JPEG/PNG, throw err nếu file > max size
// hoặc số pixel (đọc từ header, chưa decode) vượt MaxPixels
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w (%d MB)", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	switch format {
	case "jpeg", "png":
	default:
		return fmt.Errorf("%w (got %s)", ErrUnsupportedFormat, format)
	}
	return p.checkDimensions(cfg)
}

func (p *ImageProcessor) checkDimensions(cfg image.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: empty dimensions", ErrInvalidImage)
	}
	if p.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > p.MaxPixels {
		return fmt.Errorf("%w: %w (%dx%d)", ErrInvalidImage, ErrImageTooManyPixels, cfg.Width, cfg.Height)
	}
	return nil
}

// Normalize decode ảnh, fit vào MaxSide và encode lại JPEG.
// Ảnh nhỏ hơn MaxSide giữ nguyên kích thước.
func (p *ImageProcessor) Normalize(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := p.checkDimensions(cfg); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > p.MaxSide || b.Dy() > p.MaxSide {
		img = imaging.Fit(img, p.MaxSide, p.MaxSide, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *ImageProcessor) ContentType() string { return photoContentType }

func (p *ImageProcessor) Extension() string { return photoExtension }
