package models

// Language identifies a source language supported by the fact extractors.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangUnknown    Language = "unknown"
)

// SourceUnit is one file handed to the engine by discovery: a path, the
// detected language tag, and the raw text. Units are immutable; the engine
// never writes back to them.
type SourceUnit struct {
	Path     string   `json:"path"`
	Language Language `json:"language"`
	Text     []byte   `json:"-"`
}

// NewSourceUnit builds a unit from already-read content.
func NewSourceUnit(path string, lang Language, text []byte) SourceUnit {
	return SourceUnit{Path: path, Language: lang, Text: text}
}
