package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/shadycss/ast"
	"bennypowers.dev/shadycss/internal/position"
	"bennypowers.dev/shadycss/parser"
)

// Document is a stylesheet open in the editor. Its syntax tree and position
// index are built on first use and dropped whenever the content changes.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int

	mu         sync.Mutex
	stylesheet *ast.Stylesheet
	mapper     *position.Mapper
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

func (d *Document) URI() string {
	return d.uri
}

func (d *Document) LanguageID() string {
	return d.languageID
}

func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// SetContent replaces the content and version, rejecting versions older
// than the current one.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.stylesheet = nil
	d.mapper = nil
	return nil
}

// Stylesheet returns the parsed content.
func (d *Document) Stylesheet() *ast.Stylesheet {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stylesheet == nil {
		d.stylesheet = parser.Parse(d.content)
	}
	return d.stylesheet
}

// Mapper returns the position index of the content.
func (d *Document) Mapper() *position.Mapper {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mapper == nil {
		d.mapper = position.NewMapper(d.content)
	}
	return d.mapper
}
