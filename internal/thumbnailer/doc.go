// Package thumbnailer wraps the external ffmpeg tool to produce a still
// JPEG image from a video file at a fixed offset.
//
// Extraction failure is modeled as a result value rather than an error:
// a missing tool, a non-zero exit, an empty frame, or a timeout all
// yield a classified Result and never abort the calling request.
package thumbnailer
