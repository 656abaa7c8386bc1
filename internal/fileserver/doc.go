// Package fileserver serves a local directory tree over HTTP.
//
// Requests are resolved against a fixed root into one of three results:
// a directory listing, the raw bytes of a regular file, or a missing path.
// Resolution never leaves the root: URL paths are cleaned before use and
// every filesystem access goes through an [os.Root].
package fileserver
