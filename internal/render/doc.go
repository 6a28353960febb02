// Package render fronts the external chart rasterizer with a
// content-addressed cache. Requests are hashed over a fixed field order so
// semantically identical requests share a key; hits inside the TTL window
// skip the subprocess entirely. Cached images are large relative to their
// keys, so the cache is bounded and swept oldest-first after each insert.
package render
