package documents

import (
	"fmt"
	"sort"
	"sync"

	"bennypowers.dev/shadycss/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager tracks the documents open in the editor
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get returns the document with the given URI, or nil.
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all open documents ordered by URI.
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].uri < docs[j].uri })
	return docs
}

// DidOpen starts tracking a document, replacing any with the same URI.
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose stops tracking a document
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies content changes in order. Either all changes apply or
// the document is left as it was.
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		next, err := applyIncrementalChange(content, *change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
		content = next
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyIncrementalChange replaces the text in rng. The line just past the
// last one addresses the end of the document.
func applyIncrementalChange(content string, rng protocol.Range, text string) (string, error) {
	m := position.NewMapper(content)
	lines := m.LineCount()
	if int(rng.Start.Line) > lines {
		return "", fmt.Errorf("start line %d out of bounds (total lines: %d)", rng.Start.Line, lines)
	}
	if int(rng.End.Line) > lines {
		return "", fmt.Errorf("end line %d out of bounds (total lines: %d)", rng.End.Line, lines)
	}

	start := m.Offset(rng.Start)
	end := m.Offset(rng.End)
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			rng.End.Line, rng.End.Character, rng.Start.Line, rng.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}
