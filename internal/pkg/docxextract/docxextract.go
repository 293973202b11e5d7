package docxextract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

var ErrNoDocumentPart = errors.New("docx has no word/document.xml")

// ExtractFile returns the text of each body paragraph of the DOCX at path,
// in document order, separated by newlines.
func ExtractFile(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx failed: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s failed: %w", documentPart, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s failed: %w", documentPart, err)
		}
		return parseDocument(content)
	}
	return "", ErrNoDocumentPart
}

// parseDocument walks the XML tokens of the document part. Only paragraphs
// directly under w:body are collected. Inside them every run counts,
// including runs nested in hyperlinks, insertions, smart tags and content
// controls. w:tab becomes "\t" and w:br or w:cr becomes "\n".
func parseDocument(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		stack   []string
		lines   []string
		current *strings.Builder
		inText  bool
	)
	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s failed: %w", documentPart, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			switch {
			case name == "p" && current == nil && parent() == "body":
				current = &strings.Builder{}
			case current != nil && parent() == "r":
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch name := el.Name.Local; {
			case name == "t":
				inText = false
			case name == "p" && current != nil && parent() == "body":
				lines = append(lines, current.String())
				current = nil
			}
		case xml.CharData:
			if inText && current != nil {
				current.Write(el)
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
