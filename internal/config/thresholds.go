package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"

	"github.com/ayusman/roshambo/internal/detector"
)

// ThresholdSection is the INI section holding the colour thresholds.
const ThresholdSection = "thresholds"

// Threshold keys, each holding an "h, s, v" triple.
const (
	KeySkinLower = "skin_lower"
	KeySkinUpper = "skin_upper"
	KeyBgLower   = "bg_lower"
	KeyBgUpper   = "bg_upper"
)

// LoadThresholds reads the threshold profile at path. Keys that are missing
// or malformed keep the value from fallback; the returned error lists the
// malformed keys and is meant for logging only. A missing file returns
// fallback and no error.
func LoadThresholds(path string, fallback detector.Thresholds) (detector.Thresholds, error) {
	th := fallback

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return th, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return th, fmt.Errorf("failed to load thresholds: %w", err)
	}

	section := f.Section(ThresholdSection)
	targets := []struct {
		key string
		dst *detector.HSV
	}{
		{KeySkinLower, &th.Skin.Lower},
		{KeySkinUpper, &th.Skin.Upper},
		{KeyBgLower, &th.Background.Lower},
		{KeyBgUpper, &th.Background.Upper},
	}

	var errs []error
	for _, t := range targets {
		if !section.HasKey(t.key) {
			continue
		}
		hsv, err := parseHSV(section.Key(t.key))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.key, err))
			continue
		}
		*t.dst = hsv
	}

	return th, errors.Join(errs...)
}

func parseHSV(k *ini.Key) (detector.HSV, error) {
	vals, err := k.StrictInts(",")
	if err != nil {
		return detector.HSV{}, err
	}
	if len(vals) != 3 {
		return detector.HSV{}, fmt.Errorf("expected 3 values, got %d", len(vals))
	}

	hsv := detector.HSV{vals[0], vals[1], vals[2]}
	if !hsv.Valid() {
		return detector.HSV{}, fmt.Errorf("value %v out of range", vals)
	}
	return hsv, nil
}

// SaveThresholds writes th to path as an INI profile.
func SaveThresholds(path string, th detector.Thresholds) error {
	f := ini.Empty()
	section, err := f.NewSection(ThresholdSection)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	values := []struct {
		key string
		hsv detector.HSV
	}{
		{KeySkinLower, th.Skin.Lower},
		{KeySkinUpper, th.Skin.Upper},
		{KeyBgLower, th.Background.Lower},
		{KeyBgUpper, th.Background.Upper},
	}
	for _, v := range values {
		if _, err := section.NewKey(v.key, formatHSV(v.hsv)); err != nil {
			return fmt.Errorf("failed to set %s: %w", v.key, err)
		}
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save thresholds: %w", err)
	}
	return nil
}

func formatHSV(h detector.HSV) string {
	return fmt.Sprintf("%d, %d, %d", h[0], h[1], h[2])
}
