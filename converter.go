package docchat

// Converter renders extracted HTML as the text handed to the language model.
type Converter interface {
	// Convert transforms HTML content (e.g., from an Extractor) into text.
	Convert(html string) (string, error)
}
