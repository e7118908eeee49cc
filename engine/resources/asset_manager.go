package resources

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/scion-go/common"
	"github.com/Carmen-Shannon/scion-go/engine/component"
	"github.com/cespare/xxhash/v2"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// ErrAssetNotFound is returned when an asset name or path cannot be resolved.
var ErrAssetNotFound = eris.New("asset not found")

// AssetKind namespaces asset references.
type AssetKind uint8

const (
	AssetMaterial AssetKind = iota
	AssetTileset
	AssetFont
)

// AssetRef is a stable handle to a registered asset.
type AssetRef struct {
	Kind AssetKind
	ID   uint64
	Name string
}

func newAssetRef(kind AssetKind, name string) AssetRef {
	return AssetRef{Kind: kind, ID: xxhash.Sum64String(string(rune('0'+kind)) + ":" + name), Name: name}
}

// Font is a bitmap font: a texture holding a grid of equally sized glyph cells laid out in
// the order of Chars.
type Font struct {
	Name        string
	TexturePath string
	Chars       string
	CharWidth   float32
	CharHeight  float32
	Columns     int
	Lines       int
}

// TextureLoader decodes the texture stored at path.
type TextureLoader func(path string) (common.TextureStagingData, error)

// AssetManager registers materials, tilesets and fonts by name and caches decoded textures.
// It is safe for concurrent use so textures can be preloaded in parallel.
type AssetManager struct {
	mu        sync.RWMutex
	materials map[uint64]component.Material
	tilesets  map[uint64]*component.Tileset
	fonts     map[uint64]*Font
	textures  map[string]common.TextureStagingData
	loader    TextureLoader
}

// NewAssetManager creates an empty manager decoding textures from disk.
func NewAssetManager() *AssetManager {
	return &AssetManager{
		materials: make(map[uint64]component.Material),
		tilesets:  make(map[uint64]*component.Tileset),
		fonts:     make(map[uint64]*Font),
		textures:  make(map[string]common.TextureStagingData),
		loader:    common.DecodeTextureFile,
	}
}

// SetTextureLoader replaces the texture decoder.
func (a *AssetManager) SetTextureLoader(loader TextureLoader) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loader = loader
}

// RegisterMaterial stores a material under name.
func (a *AssetManager) RegisterMaterial(name string, m component.Material) AssetRef {
	ref := newAssetRef(AssetMaterial, name)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.materials[ref.ID] = m
	return ref
}

// Material resolves a material reference.
func (a *AssetManager) Material(ref AssetRef) (component.Material, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.materials[ref.ID]
	return m, ok
}

// RegisterTileset stores a tileset under its name.
func (a *AssetManager) RegisterTileset(ts *component.Tileset) AssetRef {
	ref := newAssetRef(AssetTileset, ts.Name)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tilesets[ref.ID] = ts
	return ref
}

// Tileset resolves a tileset by name.
func (a *AssetManager) Tileset(name string) (*component.Tileset, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ts, ok := a.tilesets[newAssetRef(AssetTileset, name).ID]
	return ts, ok
}

// RegisterFont stores a bitmap font under its name.
func (a *AssetManager) RegisterFont(f *Font) AssetRef {
	ref := newAssetRef(AssetFont, f.Name)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fonts[ref.ID] = f
	return ref
}

// Font resolves a font by name.
func (a *AssetManager) Font(name string) (*Font, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	f, ok := a.fonts[newAssetRef(AssetFont, name).ID]
	return f, ok
}

// PutTexture caches already decoded pixels under path.
func (a *AssetManager) PutTexture(path string, data common.TextureStagingData) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.textures[path] = data
}

// LoadTexture returns the cached texture at path, decoding it on first use.
//
// Parameters:
//   - path: the texture path
//
// Returns:
//   - common.TextureStagingData: the decoded pixels
//   - error: ErrAssetNotFound wrapping the decode failure
func (a *AssetManager) LoadTexture(path string) (common.TextureStagingData, error) {
	a.mu.RLock()
	data, ok := a.textures[path]
	loader := a.loader
	a.mu.RUnlock()
	if ok {
		return data, nil
	}
	if loader == nil {
		return common.TextureStagingData{}, eris.Wrapf(ErrAssetNotFound, "no loader for texture %s", path)
	}

	data, err := loader(path)
	if err != nil {
		return common.TextureStagingData{}, eris.Wrapf(ErrAssetNotFound, "texture %s: %v", path, err)
	}
	a.PutTexture(path, data)
	return data, nil
}

// PreloadTextures decodes the given textures in parallel and caches them.
//
// Parameters:
//   - ctx: cancels the remaining decodes
//   - paths: the textures to decode
//
// Returns:
//   - error: the first decode failure
func (a *AssetManager) PreloadTextures(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := a.LoadTexture(p)
			return err
		})
	}
	return g.Wait()
}
