// Package ocr suggests item names by reading printed text with Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). A crop of
// the measured object, such as a product box, usually carries its name in
// large print; SuggestLabel reads it and proposes the most confident words
// as a label.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Label Selection
//
// PickLabel is independent of Tesseract and keeps only words that are
// confident enough and contain a letter, then returns the best few in
// reading order. Callers can re-run it over LabelResult.Words with their own
// thresholds.
package ocr
