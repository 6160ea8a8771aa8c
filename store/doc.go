// Package store persists tensor artifacts by name.
//
// A Store holds opaque byte objects. SaveBuffer and LoadBuffer add the
// artifact encoding from package blob on top, so a quantized buffer and its
// scheme are always written and read together.
//
// Implementations:
//   - MemoryStore: in-process map, for tests and tools
//   - LocalStore: one file per artifact under a root directory
//   - store/minio: MinIO and other S3-compatible servers
//   - store/s3: Amazon S3 through aws-sdk-go-v2
//
// Names are slash-separated relative paths such as "model/layer0.tb".
package store
