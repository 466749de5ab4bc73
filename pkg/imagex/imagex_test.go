package imagex

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	data := pngFixture(t)

	if err := ValidateImage(data, "photo.png"); err != nil {
		t.Fatalf("valid png rejected: %v", err)
	}

	if err := ValidateImage(nil, "photo.png"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if err := ValidateImage(data, "photo.txt"); !errors.Is(err, ErrBadImageType) {
		t.Fatalf("expected ErrBadImageType, got %v", err)
	}
	// 扩展名合法但内容是文本
	if err := ValidateImage([]byte("definitely not an image"), "photo.png"); !errors.Is(err, ErrContentMismatch) {
		t.Fatalf("expected ErrContentMismatch, got %v", err)
	}
}

func TestValidateVideo(t *testing.T) {
	if err := ValidateVideo(nil, "clip.mp4"); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if err := ValidateVideo([]byte{0x00, 0x01}, "clip.avi"); !errors.Is(err, ErrBadVideoType) {
		t.Fatalf("expected ErrBadVideoType, got %v", err)
	}
	// 嗅探不出类型的封装格式不强行拒绝
	if err := ValidateVideo([]byte{0x00, 0x01, 0x02, 0x03}, "clip.mp4"); err != nil {
		t.Fatalf("octet-stream video rejected: %v", err)
	}
}

func TestNormalizeJPEG(t *testing.T) {
	data := pngFixture(t)

	normalized, err := NormalizeJPEG(data)
	if err != nil {
		t.Fatalf("NormalizeJPEG: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(normalized))
	if err != nil {
		t.Fatalf("output is not decodable jpeg: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected dimensions: %v", img.Bounds())
	}

	if _, err := NormalizeJPEG([]byte("garbage")); !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestExt(t *testing.T) {
	if got := Ext("Photo.JPG"); got != ".jpg" {
		t.Fatalf("expected .jpg, got %s", got)
	}
	if got := Ext("noext"); got != "" {
		t.Fatalf("expected empty ext, got %s", got)
	}
}
