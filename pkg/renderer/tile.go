package renderer

import "image"

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int             // Row-major index, stable for a given grid
	Bounds image.Rectangle // Pixel bounds (Min inclusive, Max exclusive)
}

// NewTileGrid splits the image into row-major tiles. Edge tiles are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for y := 0; y < tilesY; y++ {
		for x := 0; x < tilesX; x++ {
			x0 := x * tileSize
			y0 := y * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}
	return tiles
}
