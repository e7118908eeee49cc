package resources

import "fmt"

// CharacterPosition is the pixel rectangle of one glyph inside the font texture.
type CharacterPosition struct {
	StartX, StartY float32
	EndX, EndY     float32
}

// Width returns the glyph width in pixels.
func (c CharacterPosition) Width() float32 { return c.EndX - c.StartX }

// Height returns the glyph height in pixels.
func (c CharacterPosition) Height() float32 { return c.EndY - c.StartY }

// FontAtlasEntry is the glyph layout of one font texture.
type FontAtlasEntry struct {
	TexturePath   string
	Characters    map[rune]CharacterPosition
	TextureWidth  float32
	TextureHeight float32
	MinY          float32
}

// Character returns the glyph rectangle of ch.
func (e *FontAtlasEntry) Character(ch rune) (CharacterPosition, bool) {
	c, ok := e.Characters[ch]
	return c, ok
}

// BuildBitmapAtlas computes the glyph grid of a bitmap font.
func BuildBitmapAtlas(f *Font) *FontAtlasEntry {
	if f.Columns <= 0 {
		panic(fmt.Sprintf("bitmap font %q must have at least one column", f.Name))
	}
	entry := &FontAtlasEntry{
		TexturePath:   f.TexturePath,
		Characters:    make(map[rune]CharacterPosition),
		TextureWidth:  f.CharWidth * float32(f.Columns),
		TextureHeight: f.CharHeight * float32(max(f.Lines, 1)),
	}

	minY := float32(-1)
	for pos, ch := range []rune(f.Chars) {
		startX := float32(pos%f.Columns) * f.CharWidth
		startY := float32(pos/f.Columns) * f.CharHeight
		entry.Characters[ch] = CharacterPosition{
			StartX: startX,
			StartY: startY,
			EndX:   startX + f.CharWidth,
			EndY:   startY + f.CharHeight,
		}
		if minY < 0 || startY < minY {
			minY = startY
		}
	}
	entry.MinY = max(minY, 0)
	return entry
}

// FontAtlas caches the glyph layout of every font in use, keyed by font name.
type FontAtlas struct {
	entries map[string]*FontAtlasEntry
}

// NewFontAtlas creates an empty atlas.
func NewFontAtlas() *FontAtlas {
	return &FontAtlas{entries: make(map[string]*FontAtlasEntry)}
}

// Add stores the layout of font.
func (a *FontAtlas) Add(font string, entry *FontAtlasEntry) {
	a.entries[font] = entry
}

// Get returns the layout of font.
func (a *FontAtlas) Get(font string) (*FontAtlasEntry, bool) {
	e, ok := a.entries[font]
	return e, ok
}
