package conv

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var ErrNoJSONObject = errors.New("no json object found")

// ExtractJSONObject finds the JSON object inside free-form model output.
// Fenced ```json blocks win over a bare {...} span.
func ExtractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		rest = strings.TrimPrefix(rest, "json")
		rest = strings.TrimPrefix(rest, "JSON")
		if j := strings.Index(rest, "```"); j >= 0 {
			if block := strings.TrimSpace(rest[:j]); strings.HasPrefix(block, "{") {
				return block, nil
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// DecodeJSONObject extracts a JSON object from text and decodes it into v.
// Payloads that fail a strict decode get one pass through jsonrepair.
func DecodeJSONObject(text string, v any) error {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	fixed, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return fmt.Errorf("repair json: %w", err)
	}
	if err := json.Unmarshal([]byte(fixed), v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
