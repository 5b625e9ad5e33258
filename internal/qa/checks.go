// Package qa holds the post-render acceptance checks. They scan an already
// rendered deck for leaked model artifacts and oversized slides; both checks
// are read-only and run from build verification, not the generation path.
package qa

import (
	"fmt"
	"os"
	"strings"

	"github.com/slideforge/slideforge-backend/internal/render"
)

// ForbiddenTokens is the denylist of raw-JSON/markdown fragments that must
// never survive into visible slide text.
var ForbiddenTokens = []string{"```", "{", "}", `"slides":`, "Notes:"}

const snippetLen = 80

// TokenLeak is one denylisted token found in a slide's visible text.
type TokenLeak struct {
	Slide   int    `json:"slide"`
	Token   string `json:"token"`
	Snippet string `json:"snippet"`
}

// BulletOverflow is a slide whose visible line count exceeds the ceiling.
type BulletOverflow struct {
	Slide int `json:"slide"`
	Count int `json:"count"`
}

// CheckNoLeakedTokens scans every text-bearing shape of every slide for the
// denylist. An empty result means the deck is clean.
func CheckNoLeakedTokens(deck []byte) ([]TokenLeak, error) {
	archive, err := render.ReadDeck(deck)
	if err != nil {
		return nil, err
	}
	var failures []TokenLeak
	for _, slide := range archive.Slides {
		for _, shape := range slide.Shapes {
			text := shape.Text()
			if text == "" {
				continue
			}
			for _, token := range ForbiddenTokens {
				if strings.Contains(text, token) {
					failures = append(failures, TokenLeak{
						Slide:   slide.Index,
						Token:   token,
						Snippet: snippet(text),
					})
				}
			}
		}
	}
	return failures, nil
}

// CheckNoLeakedTokensFile is CheckNoLeakedTokens over a deck file on disk.
func CheckNoLeakedTokensFile(path string) ([]TokenLeak, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	return CheckNoLeakedTokens(data)
}

// CheckBulletCeiling flags slides whose non-empty paragraph count across all
// text-bearing shapes exceeds maxBullets+2. The slack tolerates title and
// footer lines sharing a shape with the bullets.
func CheckBulletCeiling(deck []byte, maxBullets int) ([]BulletOverflow, error) {
	archive, err := render.ReadDeck(deck)
	if err != nil {
		return nil, err
	}
	var failures []BulletOverflow
	for _, slide := range archive.Slides {
		count := 0
		for _, shape := range slide.Shapes {
			for _, p := range shape.Paragraphs {
				if strings.TrimSpace(p) != "" {
					count++
				}
			}
		}
		if count > maxBullets+2 {
			failures = append(failures, BulletOverflow{Slide: slide.Index, Count: count})
		}
	}
	return failures, nil
}

// CheckBulletCeilingFile is CheckBulletCeiling over a deck file on disk.
func CheckBulletCeilingFile(path string, maxBullets int) ([]BulletOverflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", path, err)
	}
	return CheckBulletCeiling(data, maxBullets)
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen])
}
