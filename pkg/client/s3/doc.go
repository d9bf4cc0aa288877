// Package s3 implements the client contract over an S3 (or S3-compatible)
// bucket. Object keys are mapped onto slash paths: a directory is either a
// zero-byte marker object whose key ends in "/" or a prefix implied by the
// objects below it. Operations S3 cannot express (permissions, ownership,
// symlinks) report UnsupportedFeature.
package s3
