package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// The rendered deck is a zip archive: a deck.xml manifest, one
// slides/slideN.xml document per slide, and the placed images under media/.
// Every text-bearing element is a <shape> with <p> paragraphs, which is what
// the QA checks scan.

type Manifest struct {
	XMLName    xml.Name `xml:"deck"`
	Title      string   `xml:"title"`
	Subtitle   string   `xml:"subtitle"`
	SlideCount int      `xml:"slideCount"`
	Generator  string   `xml:"generator"`
}

type Shape struct {
	Kind       string   `xml:"kind,attr"`
	Paragraphs []string `xml:"p"`
}

// Text joins the shape's paragraphs the way they appear on the slide.
func (s Shape) Text() string {
	return strings.Join(s.Paragraphs, "\n")
}

type Picture struct {
	Src    string  `xml:"src,attr"`
	Left   float64 `xml:"left,attr"`
	Top    float64 `xml:"top,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type SlideDoc struct {
	XMLName  xml.Name  `xml:"slide"`
	Index    int       `xml:"index,attr"`
	Layout   int       `xml:"layout,attr"`
	Shapes   []Shape   `xml:"shape"`
	Pictures []Picture `xml:"picture"`
}

// DeckArchive is a parsed rendered deck.
type DeckArchive struct {
	Manifest Manifest
	Slides   []SlideDoc
	Media    map[string][]byte
}

// ReadDeck parses a rendered deck from bytes.
func ReadDeck(data []byte) (*DeckArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open deck archive: %w", err)
	}
	archive := &DeckArchive{Media: map[string][]byte{}}
	for _, f := range zr.File {
		raw, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		switch {
		case f.Name == "deck.xml":
			if err := xml.Unmarshal(raw, &archive.Manifest); err != nil {
				return nil, fmt.Errorf("parse manifest: %w", err)
			}
		case path.Dir(f.Name) == "slides":
			var slide SlideDoc
			if err := xml.Unmarshal(raw, &slide); err != nil {
				return nil, fmt.Errorf("parse %s: %w", f.Name, err)
			}
			archive.Slides = append(archive.Slides, slide)
		case path.Dir(f.Name) == "media":
			archive.Media[f.Name] = raw
		}
	}
	sort.Slice(archive.Slides, func(i, j int) bool {
		return archive.Slides[i].Index < archive.Slides[j].Index
	})
	return archive, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return raw, nil
}

type archiveWriter struct {
	zw *zip.Writer
}

func (w *archiveWriter) writeXML(name string, doc any) error {
	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.writeRaw(name, append([]byte(xml.Header), raw...))
}

func (w *archiveWriter) writeRaw(name string, data []byte) error {
	entry, err := w.zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
