package media

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeImage(t *testing.T, width, height int, format imaging.Format) string {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestFileStore_Save(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media/", 100)

	tests := []struct {
		name    string
		payload string
		wantExt string
	}{
		{"PNG data URI", "data:image/png;base64," + encodeImage(t, 10, 10, imaging.PNG), ".png"},
		{"JPEG data URI", "data:image/jpeg;base64," + encodeImage(t, 10, 10, imaging.JPEG), ".jpg"},
		{"纯 base64 自动识别", encodeImage(t, 10, 10, imaging.PNG), ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := store.Save(tt.payload)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ref, "/media/recipes/"))
			assert.True(t, strings.HasSuffix(ref, tt.wantExt))

			_, err = os.Stat(filepath.Join(root, "recipes", filepath.Base(ref)))
			assert.NoError(t, err)
		})
	}
}

func TestFileStore_SaveResizesWideImage(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media", 50)

	ref, err := store.Save("data:image/png;base64," + encodeImage(t, 200, 100, imaging.PNG))
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(root, "recipes", filepath.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestFileStore_SaveInvalid(t *testing.T) {
	store := NewFileStore(t.TempDir(), "/media", 0)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"空内容", "  ", ErrEmptyPayload},
		{"非 base64", "data:image/png;base64,@@@", ErrInvalidPayload},
		{"缺少 base64 标记", "data:image/png,abcd", ErrInvalidPayload},
		{"非图片内容", base64.StdEncoding.EncodeToString([]byte("plain text content")), ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// hugePNG 生成一个声明 width x height 的 PNG, 实际只携带 1x1 像素数据
func hugePNG(t *testing.T, width, height uint32) string {
	t.Helper()
	img := imaging.New(1, 1, color.NRGBA{A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	raw := buf.Bytes()

	// 8 字节签名之后是 IHDR: 长度(4) 类型(4) 数据(13) CRC(4)
	binary.BigEndian.PutUint32(raw[16:20], width)
	binary.BigEndian.PutUint32(raw[20:24], height)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))
	return base64.StdEncoding.EncodeToString(raw)
}

func TestFileStore_SaveLimits(t *testing.T) {
	tests := []struct {
		name    string
		store   *FileStore
		payload string
	}{
		{
			name:    "声明的尺寸超过像素上限",
			store:   NewFileStore(t.TempDir(), "/media", 0),
			payload: "data:image/png;base64," + hugePNG(t, 20000, 20000),
		},
		{
			name:    "自定义像素上限",
			store:   NewFileStore(t.TempDir(), "/media", 0).WithLimits(0, 50),
			payload: encodeImage(t, 10, 10, imaging.PNG),
		},
		{
			name:    "解码后字节数超限",
			store:   NewFileStore(t.TempDir(), "/media", 0).WithLimits(32, 0),
			payload: encodeImage(t, 10, 10, imaging.PNG),
		},
		{
			name:    "base64 长度超限",
			store:   NewFileStore(t.TempDir(), "/media", 0).WithLimits(300, 0),
			payload: strings.Repeat("A", 1024),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.store.Save(tt.payload)
			assert.ErrorIs(t, err, ErrTooLarge)
		})
	}
}

func TestFileStore_SaveWithinLimits(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media", 0).WithLimits(0, 100)

	ref, err := store.Save(encodeImage(t, 10, 10, imaging.PNG))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "recipes", filepath.Base(ref)))
	assert.NoError(t, err)
}

func TestFileStore_Delete(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root, "/media", 0)

	ref, err := store.Save(encodeImage(t, 4, 4, imaging.PNG))
	require.NoError(t, err)

	store.Delete(ref)
	_, err = os.Stat(filepath.Join(root, "recipes", filepath.Base(ref)))
	assert.True(t, os.IsNotExist(err))

	// 外部引用与路径穿越被忽略
	store.Delete("https://example.com/a.png")
	store.Delete("/media/../secret")
}
