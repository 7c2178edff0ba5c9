package actions

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// PictureResult is the optional body of a profile picture upload.
type PictureResult struct {
	ImageURL string `json:"imageUrl"`
}

// Decode maps a parsed response body onto out using its json tags.
func Decode(body any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(body); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// DecodePicture reads the picture URL from an upload response.
// It reports false when the backend sent no usable body.
func DecodePicture(body any) (PictureResult, bool) {
	var res PictureResult
	if _, ok := body.(map[string]any); !ok {
		return res, false
	}
	if err := Decode(body, &res); err != nil || res.ImageURL == "" {
		return PictureResult{}, false
	}
	return res, true
}
