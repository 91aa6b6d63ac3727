// Package catalog enumerates and orders the media files of an input folder.
//
// Only top-level files with a whitelisted video or image extension are
// considered. A missing folder yields an empty catalog rather than an error.
// Snapshot reduces a catalog to its set of paths for change detection.
package catalog
