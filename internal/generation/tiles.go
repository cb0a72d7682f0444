package generation

// TileKind identifies a terrain tile. Kinds are ordered by solidity;
// erosion always moves a tile one rank toward Water.
type TileKind uint8

const (
	Water TileKind = iota
	Sand
	Grass
	Wood
	Stone
)

// AllTiles lists every kind from least to most solid
var AllTiles = []TileKind{Water, Sand, Grass, Wood, Stone}

var tileNames = [...]string{
	Water: "water",
	Sand:  "sand",
	Grass: "grass",
	Wood:  "wood",
	Stone: "stone",
}

// Glyphs follow the ASCII palette used for text output
var tileGlyphs = [...]byte{
	Water: '~',
	Sand:  '.',
	Grass: '^',
	Wood:  'T',
	Stone: 'M',
}

func (t TileKind) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// Glyph returns the single-character representation of the tile
func (t TileKind) Glyph() byte {
	if int(t) < len(tileGlyphs) {
		return tileGlyphs[t]
	}
	return '?'
}

// IsLand reports whether the tile ranks above Sand
func (t TileKind) IsLand() bool {
	return t > Sand
}

// Lower returns the next rank down. Water is the floor.
func (t TileKind) Lower() TileKind {
	if t <= Water {
		return Water
	}
	return t - 1
}

// ParseGlyph maps a glyph back to its tile kind
func ParseGlyph(c byte) (TileKind, bool) {
	for i, g := range tileGlyphs {
		if g == c {
			return TileKind(i), true
		}
	}
	return Water, false
}
