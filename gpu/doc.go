// Package gpu turns tensor input into finished GPU upload buffers.
//
// The package never talks to a graphics API itself. A Device creates buffers
// and exposes a writable mapping; Build normalizes the input, optionally
// quantizes it, allocates a buffer of exactly the processed byte length with
// MappedAtCreation set, copies the bytes through the mapping and unmaps it.
// After Build returns the buffer belongs to the caller.
//
// Usage flags use the WebGPU bit values so a thin adapter can pass them
// straight through to a real device.
//
// MemoryDevice is a host-memory Device that enforces the same mapping rules
// as a real one: a buffer may be mapped once at a time and its contents are
// only reachable through the mapping while mapped.
package gpu
