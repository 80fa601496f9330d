package content

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/chai2010/webp"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
)

const (
	DefaultWidth = 800
	MaxWidth     = 1600
	webpQuality  = 80
)

type ObjectGetter interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Thumbnails turns gallery originals into WebP renditions and keeps the
// most recently requested ones in memory.
type Thumbnails struct {
	site   *Site
	store  ObjectGetter
	prefix string
	cache  *lru.Cache[string, []byte]
	log    *slog.Logger
}

func NewThumbnails(site *Site, store ObjectGetter, prefix string, size int, log *slog.Logger) (*Thumbnails, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("thumbnail cache: %w", err)
	}
	return &Thumbnails{
		site:   site,
		store:  store,
		prefix: prefix,
		cache:  cache,
		log:    log.With("module", "thumbnails"),
	}, nil
}

// ClampWidth maps a requested width onto 1..MaxWidth, zero meaning default.
func ClampWidth(w int) int {
	switch {
	case w <= 0:
		return DefaultWidth
	case w > MaxWidth:
		return MaxWidth
	}
	return w
}

func (t *Thumbnails) Get(ctx context.Context, id string, width int) ([]byte, error) {
	item, ok := t.site.GalleryItem(id)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	width = ClampWidth(width)
	key := fmt.Sprintf("%s@%d", id, width)

	if b, ok := t.cache.Get(key); ok {
		t.log.Debug("thumbnail.cache.hit", "key", key)
		return b, nil
	}

	original, err := t.store.Get(ctx, t.prefix+item.Object)
	if err != nil {
		return nil, err
	}

	out, err := Render(original, width)
	if err != nil {
		t.log.Error("thumbnail.render.failed", "id", id, "err", err)
		return nil, err
	}

	t.cache.Add(key, out)
	return out, nil
}

// Render scales img down to width, never up, and encodes it as WebP.
func Render(original []byte, width int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	dst := src
	if b.Dx() > width {
		height := b.Dy() * width / b.Dx()
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, draw.Over, nil)
		dst = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
