package tilemap

// Option configures a Map during creation.
//
// Example:
//
//	// Default 64x64 chunks
//	m := tilemap.New()
//
//	// Small chunks for dense per-frame churn
//	m := tilemap.New(tilemap.WithChunkSize(16))
type Option func(*config)

// config holds optional configuration for Map creation.
type config struct {
	chunkSize int32
	capacity  int
}

// defaultConfig returns the default map options.
func defaultConfig() config {
	return config{chunkSize: DefaultChunkSize}
}

// WithChunkSize sets the chunk edge length in tiles. Smaller chunks mean
// cheaper rebuilds on scattered edits but more draw calls; larger chunks
// the reverse. Values below 1 fall back to DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(c *config) {
		if size >= 1 {
			c.chunkSize = int32(size)
		}
	}
}

// WithCapacity pre-sizes the chunk index for maps whose rough chunk
// count is known up front. Purely an allocation hint.
func WithCapacity(chunks int) Option {
	return func(c *config) {
		if chunks > 0 {
			c.capacity = chunks
		}
	}
}
