// Command tilemapdemo exercises the tilemap pipeline end to end: it
// fills a map procedurally, synthesizes chunk meshes, and reports what
// one frame would upload and draw.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/gogpu/tilemap"
	"github.com/gogpu/tilemap/atlas"
	"github.com/gogpu/tilemap/mesh"
	"github.com/gogpu/tilemap/render"
)

const (
	tilePx     = 16
	atlasCols  = 8
	atlasRows  = 8
	numSprites = atlasCols * atlasRows
)

func main() {
	var (
		size    = flag.Int("size", 256, "map extent in tiles per axis")
		chunk   = flag.Int("chunk", 64, "chunk edge length in tiles")
		layers  = flag.Int("layers", 2, "number of tile layers")
		dynamic = flag.Bool("dynamic", false, "use dynamic meshes instead of baked UVs")
		workers = flag.Int("workers", 0, "synthesis workers (0 = GOMAXPROCS)")
		gpu     = flag.Bool("gpu", false, "open a GPU device and upload for real")
	)
	flag.Parse()

	layout, err := atlas.Grid(tilemap.V2(tilePx, tilePx), atlasCols, atlasRows)
	if err != nil {
		log.Fatalf("atlas layout: %v", err)
	}

	m := tilemap.New(tilemap.WithChunkSize(*chunk))
	fillMap(m, *size, *layers)
	log.Printf("map: %d tiles in %d chunks (chunk size %d)",
		m.TileCount(), m.ChunkCount(), m.ChunkSize())

	opts := []render.Option{render.WithWorkers(*workers)}
	if *gpu {
		opts = append(opts, render.WithOwnedDevice())
	}
	eng, err := render.NewEngine(render.NullDeviceHandle{}, opts...)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	defer eng.Close()
	if _, _, err := eng.Device(); err == nil {
		log.Printf("engine: GPU device opened")
	} else if *gpu {
		log.Fatalf("engine: %v", err)
	}

	cfg := render.MapConfig{
		Atlas:    layout,
		Texture:  buildAtlasImage(),
		TileSize: tilemap.V2(tilePx, tilePx),
	}
	if *dynamic {
		cfg.Mode = mesh.ModeDynamic
	}
	obj, err := eng.Add(m, cfg)
	if err != nil {
		log.Fatalf("add map: %v", err)
	}

	extent := float32(*size * tilePx)
	eng.SetView(render.Ortho(0, extent, 0, extent))
	eng.SetViewBounds(tilemap.V2(extent/2, extent/2), tilemap.V2(extent, extent))

	start := time.Now()
	eng.Sync()
	log.Printf("full sync: %d meshes in %v", obj.MeshCount(), time.Since(start))
	reportMeshes(obj)

	// An incremental edit re-synthesizes only the touched chunks.
	m.SetTile(tilemap.IV3(0, 0, 0), tilemap.NewTile(13))
	m.SetTile(tilemap.IV3(int32(*size)-1, int32(*size)-1, 0), tilemap.NewTile(14))
	start = time.Now()
	eng.Sync()
	log.Printf("incremental sync after 2 edits: %v", time.Since(start))
}

// fillMap lays a full ground layer and sparse decoration above it,
// with deterministic sprite and flip variation.
func fillMap(m *tilemap.Map, size, layers int) {
	updates := make([]tilemap.Update, 0, size*size)
	for y := int32(0); y < int32(size); y++ {
		for x := int32(0); x < int32(size); x++ {
			t := tilemap.NewTile(uint32(x*31+y*17) % numSprites)
			if (x+y)%2 == 0 {
				t.Flags = tilemap.FlipX
			}
			updates = append(updates, tilemap.Set(tilemap.IV3(x, y, 0), t))
		}
	}
	m.SetTiles(updates)

	for layer := int32(1); layer < int32(layers); layer++ {
		for y := int32(0); y < int32(size); y += 7 {
			for x := int32(0); x < int32(size); x += 5 {
				t := tilemap.NewTile(uint32(x+y+layer) % numSprites)
				t.Color = tilemap.RGBA(255, 220, 180, 200)
				m.SetTile(tilemap.IV3(x, y, layer), t)
			}
		}
	}
}

// buildAtlasImage paints one flat-colored square per sprite slot.
func buildAtlasImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, atlasCols*tilePx, atlasRows*tilePx))
	for s := 0; s < numSprites; s++ {
		cx := (s % atlasCols) * tilePx
		cy := (s / atlasCols) * tilePx
		c := color.RGBA{
			R: uint8(40 + s*3),
			G: uint8(200 - s*2),
			B: uint8(90 + s),
			A: 255,
		}
		for y := 0; y < tilePx; y++ {
			for x := 0; x < tilePx; x++ {
				img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
	return img
}

func reportMeshes(obj *render.MapObject) {
	var vertexBytes, indexBytes, tileBytes, quads int
	obj.ForEachMesh(func(_ tilemap.ChunkCoord, cm *mesh.ChunkMesh) {
		vertexBytes += len(cm.Vertices)
		indexBytes += len(cm.Indices)
		tileBytes += len(cm.Tiles)
		quads += cm.QuadCount()
	})
	log.Printf("frame data: %d quads, %d KiB vertices, %d KiB indices, %d KiB tile tables",
		quads, vertexBytes/1024, indexBytes/1024, tileBytes/1024)
}
