package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/otiai10/gosseract/v2"
)

// Word is one word recognized by Tesseract.
type Word struct {
	Text string `json:"text"`

	// Confidence is Tesseract's recognition confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds locates the word in the image that was read.
	Bounds image.Rectangle `json:"bounds"`
}

// LabelResult is a suggested item name and the OCR output it came from.
type LabelResult struct {
	// Label is the suggested name. Empty when no legible word was found.
	Label string `json:"label"`

	// FullText is everything Tesseract read, with its original line breaks.
	FullText string `json:"full_text"`

	// Words are the individual words with their confidence.
	Words []Word `json:"words"`
}

// Defaults for SuggestLabel.
const (
	DefaultLanguage      = "eng"
	DefaultMinConfidence = 0.6
	DefaultMaxLabelWords = 3
)

// SuggestLabel reads the printed text on img, typically the crop of a
// measured object, and proposes a short name for it from the most
// confident words.
//
// Parameters:
//   - img: Image to read. Usually the output of the crop_object tool.
//   - language: Tesseract language code; empty means "eng". The language
//     data must be installed on the system.
//
// Returns:
//   - *LabelResult: The suggested label plus the raw OCR output.
//   - error: Non-nil if the image cannot be staged or Tesseract fails.
func SuggestLabel(img image.Image, language string) (*LabelResult, error) {
	text, words, err := ReadWords(img, language)
	if err != nil {
		return nil, err
	}

	return &LabelResult{
		Label:    PickLabel(words, DefaultMinConfidence, DefaultMaxLabelWords),
		FullText: text,
		Words:    words,
	}, nil
}

// ReadWords runs Tesseract on img and returns the full text and the words
// it recognized, in reading order. Bounds are in img's coordinates.
//
// Tesseract needs a file path, so img is staged as a temporary PNG that is
// removed before returning.
func ReadWords(img image.Image, language string) (string, []Word, error) {
	if language == "" {
		language = DefaultLanguage
	}

	tmpFile, err := os.CreateTemp("", "ocr-label-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", nil, fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Text without boxes is still usable for FullText
		return text, []Word{}, nil
	}

	origin := img.Bounds().Min
	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds:     box.Box.Add(origin),
		})
	}

	return text, words, nil
}

// PickLabel chooses up to maxWords of the most confident legible words and
// joins them in reading order. A word is legible when, after trimming
// surrounding punctuation, it has at least two characters and contains a
// letter.
func PickLabel(words []Word, minConfidence float64, maxWords int) string {
	type candidate struct {
		text  string
		conf  float64
		index int
	}

	candidates := make([]candidate, 0, len(words))
	for i, w := range words {
		if w.Confidence < minConfidence {
			continue
		}
		text := strings.TrimFunc(w.Text, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(text)) < 2 || strings.IndexFunc(text, unicode.IsLetter) < 0 {
			continue
		}
		candidates = append(candidates, candidate{text: text, conf: w.Confidence, index: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].conf > candidates[j].conf
	})
	if maxWords > 0 && len(candidates) > maxWords {
		candidates = candidates[:maxWords]
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.text
	}
	return strings.Join(parts, " ")
}
