// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws tilemap.Map contents through wgpu/hal.
//
// The Engine is the per-frame driver: it watches maps for dirty chunks,
// rebuilds their meshes on a worker pool, uploads the results, and
// records draws into a render pass provided by the host.
//
// # Key Principle
//
// The engine RECEIVES a GPU device from the host application whenever
// one exists; it only creates its own when explicitly asked via
// WithOwnedDevice. Hosts that implement gpucontext.DeviceProvider with
// the HalDevice/HalQueue extension share their device with the engine.
//
// # Usage
//
//	m := tilemap.New(tilemap.WithChunkSize(32))
//	layout, _ := atlas.Grid(tilemap.V2(16, 16), 8, 8)
//
//	engine, err := render.NewEngine(host.DeviceHandle())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	obj, err := engine.Add(m, render.MapConfig{
//	    Atlas:    layout,
//	    Texture:  sheet, // *image.RGBA sprite sheet
//	    TileSize: tilemap.V2(16, 16),
//	})
//
//	// Per frame:
//	m.SetTile(tilemap.IV3(x, y, 0), tilemap.NewTile(sprite))
//	engine.SetView(render.Ortho(0, 800, 0, 600))
//	engine.Sync()
//	engine.Draw(pass)
//
// A map with no texture is registered but skipped at draw time, and an
// engine built from NullDeviceHandle keeps all CPU-side state in sync
// without touching a GPU. Both are ordinary states, not errors.
//
// # Thread Safety
//
// The Engine is not safe for concurrent use. Mutate maps, Sync and Draw
// from one goroutine; only mesh synthesis inside Sync fans out over the
// internal worker pool.
package render
