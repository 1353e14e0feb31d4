package entity

import (
	"encoding/json"
	"fmt"
)

// Dimensions is the pixel size of a scanned page image. It marshals as a
// two-element array to match the artifact format produced by the OCR stage.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{d.Width, d.Height})
}

func (d *Dimensions) UnmarshalJSON(data []byte) error {
	var arr []int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("dimensions: want [width,height], got %d elements", len(arr))
	}
	d.Width, d.Height = arr[0], arr[1]
	return nil
}

// PageArtifact is one OCR result for one page image, decoded from a per-page
// JSON file named <document_id>_page_<page_number>.<ext>.
type PageArtifact struct {
	DocumentID string
	PageNumber int
	Filename   string
	Text       string
	Confidence float64
	Dimensions Dimensions
	OCREngine  string
}

// ArtifactFile is the on-disk shape of a page artifact. Producers disagree on
// the confidence field name; readers reconcile via Metadata.BestConfidence.
type ArtifactFile struct {
	Filename string           `json:"filename,omitempty"`
	Text     string           `json:"text"`
	Metadata ArtifactMetadata `json:"metadata"`
}

type ArtifactMetadata struct {
	PageNumber       int        `json:"page_number"`
	Dimensions       Dimensions `json:"dimensions"`
	Confidence       *float64   `json:"confidence,omitempty"`
	AvgConfidence    *float64   `json:"avg_confidence,omitempty"`
	MedianConfidence *float64   `json:"median_confidence,omitempty"`
	OCREngine        string     `json:"ocr_engine"`
	EngineConfig     string     `json:"tesseract_config,omitempty"`
}

// BestConfidence reconciles the inconsistent producer field naming:
// confidence wins, avg_confidence is the fallback. The boolean is false when
// neither is present.
func (m ArtifactMetadata) BestConfidence() (float64, bool) {
	if m.Confidence != nil {
		return *m.Confidence, true
	}
	if m.AvgConfidence != nil {
		return *m.AvgConfidence, true
	}
	return 0, false
}
