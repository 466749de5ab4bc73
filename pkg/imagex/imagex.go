package imagex

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// 注册 webp 解码器，imaging.Decode 走 image.Decode 注册表
	_ "golang.org/x/image/webp"
	_ "image/gif"
)

var (
	ErrEmptyFile        = errors.New("文件内容为空")
	ErrImageTooLarge    = errors.New("图片不能超过100MB")
	ErrVideoTooLarge    = errors.New("视频不能超过10GB")
	ErrBadImageType     = errors.New("仅支持 jpg/jpeg/png/gif/webp 格式的图片")
	ErrBadVideoType     = errors.New("仅支持 mp4/mov/webm 格式的视频")
	ErrNotAnImage       = errors.New("文件不是有效的图片")
	ErrContentMismatch  = errors.New("文件内容与扩展名不符")
)

const (
	MaxImageSize = 100 << 20 // 100MB
	MaxVideoSize = 10 << 30  // 10GB
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true,
}

// Ext 返回文件名的小写扩展名（带点）
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ValidateImage 校验上传图片：扩展名白名单、大小上限、内容嗅探与真实解码
func ValidateImage(data []byte, filename string) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return ErrImageTooLarge
	}
	if !imageExts[Ext(filename)] {
		return ErrBadImageType
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return ErrContentMismatch
	}

	// 扩展名没问题不代表内容是图片，必须真正解码一次
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return ErrNotAnImage
	}
	return nil
}

// ValidateVideo 校验上传视频：扩展名白名单、大小上限、内容嗅探
func ValidateVideo(data []byte, filename string) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > MaxVideoSize {
		return ErrVideoTooLarge
	}
	if !videoExts[Ext(filename)] {
		return ErrBadVideoType
	}

	sniffed := http.DetectContentType(data)
	// mov 会被嗅探为 video/quicktime，mp4/webm 各有对应类型；
	// 部分封装格式嗅探不出来（application/octet-stream），不强行拒绝
	if sniffed != "application/octet-stream" && !strings.HasPrefix(sniffed, "video/") {
		return ErrContentMismatch
	}
	return nil
}

// NormalizeJPEG 将任意支持格式的图片统一转码为 JPEG
func NormalizeJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotAnImage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
