// Package uriutil converts between file paths and the file:// URIs used by
// LSP clients.
package uriutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// PathToURI returns the file:// URI of p, made absolute first. Windows drive
// paths gain a leading slash (C:\a becomes file:///C:/a) and every segment is
// percent-encoded.
func PathToURI(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	slashed := filepath.ToSlash(p)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// URIToPath returns the file system path of a file:// URI. Anything that is
// not a well-formed file URI has its scheme prefix stripped and is returned
// otherwise unchanged.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return filepath.FromSlash(stripDrivePrefix(strings.TrimPrefix(uri, "file://")))
	}
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p
	}
	return filepath.FromSlash(stripDrivePrefix(p))
}

// stripDrivePrefix turns /C:/a into C:/a.
func stripDrivePrefix(p string) string {
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		return p[1:]
	}
	return p
}

// Ext returns the lower-cased extension of the path in uri, such as ".css".
func Ext(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return strings.ToLower(path.Ext(uri))
	}
	return strings.ToLower(path.Ext(u.Path))
}
