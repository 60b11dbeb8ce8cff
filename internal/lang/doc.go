// Package lang detects which European language CSV headers are written in
// and glosses them into English for the column classifier.
//
// Detection votes over a header glossary first; longer free text that the
// glossary does not cover falls back to trigram detection with whatlanggo,
// restricted to the supported languages.
package lang
