// Package media 菜谱图片的解码与本地存储
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyPayload   = errors.New("图片内容为空")
	ErrInvalidPayload = errors.New("图片不是合法的 base64 数据")
	ErrUnsupported    = errors.New("不支持的图片格式")
	ErrTooLarge       = errors.New("图片过大")
)

const (
	recipeDir = "recipes"

	// 解码前的上限, 防止小文件声明超大尺寸
	DefaultMaxBytes  = 8 << 20
	DefaultMaxPixels = 40_000_000
)

// FileStore 将 base64 图片保存到本地目录, 返回对外访问路径
type FileStore struct {
	root      string
	urlPrefix string
	maxWidth  int
	maxBytes  int
	maxPixels int
}

func NewFileStore(root, urlPrefix string, maxWidth int) *FileStore {
	return &FileStore{
		root:      root,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		maxWidth:  maxWidth,
		maxBytes:  DefaultMaxBytes,
		maxPixels: DefaultMaxPixels,
	}
}

// WithLimits 覆盖字节数与像素数上限, 非正数保持默认
func (s *FileStore) WithLimits(maxBytes, maxPixels int) *FileStore {
	if maxBytes > 0 {
		s.maxBytes = maxBytes
	}
	if maxPixels > 0 {
		s.maxPixels = maxPixels
	}
	return s
}

// Save 解码 data URI 或纯 base64 图片并落盘
func (s *FileStore) Save(payload string) (string, error) {
	// base64 长度约为原始字节的 4/3
	if s.maxBytes > 0 && len(payload) > s.maxBytes/3*4+64 {
		return "", fmt.Errorf("%w: 超过 %d 字节", ErrTooLarge, s.maxBytes)
	}

	raw, mime, err := decodePayload(payload)
	if err != nil {
		return "", err
	}
	if s.maxBytes > 0 && len(raw) > s.maxBytes {
		return "", fmt.Errorf("%w: 超过 %d 字节", ErrTooLarge, s.maxBytes)
	}

	ext, err := extensionFor(mime, raw)
	if err != nil {
		return "", err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrUnsupported
	}
	if s.maxPixels > 0 && cfg.Width*cfg.Height > s.maxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	// 过宽的图片等比缩放
	if s.maxWidth > 0 && img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	dir := filepath.Join(s.root, recipeDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建图片目录失败: %w", err)
	}

	name := uuid.NewString() + ext
	if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("保存图片失败: %w", err)
	}

	return path.Join(s.urlPrefix, recipeDir, name), nil
}

// Delete 删除之前保存的图片, 不属于本存储的引用直接忽略
func (s *FileStore) Delete(ref string) {
	rel, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		zap.S().Warnw("删除图片失败", "ref", ref, "error", err)
	}
}

// decodePayload 支持 data:image/png;base64,xxx 与纯 base64
func decodePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", ErrEmptyPayload
	}

	var mime string
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", ErrInvalidPayload
		}
		mime = strings.TrimSuffix(header, ";base64")
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 部分客户端会省略填充
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", ErrInvalidPayload
		}
	}
	if len(raw) == 0 {
		return nil, "", ErrEmptyPayload
	}
	return raw, mime, nil
}

func extensionFor(mime string, raw []byte) (string, error) {
	if mime == "" {
		mime = http.DetectContentType(raw)
	}
	switch mime {
	case "image/png":
		return ".png", nil
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/gif":
		return ".gif", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mime)
	}
}
