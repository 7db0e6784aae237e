package db

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/model"
)

// ListEntityVersions returns the id + last-mutation-timestamp projection the
// change detector polls. Slides also carry their owning slideshow id.
func ListEntityVersions(class string) ([]model.EntityVersion, error) {
	var q string
	switch class {
	case model.ClassSlides:
		q = `SELECT id, updated_at, slideshow_id AS parent_id FROM slides;`
	case model.ClassSlideshows:
		q = `SELECT id, updated_at FROM slideshows;`
	case model.ClassIndicators:
		q = `SELECT id, updated_at FROM indicators;`
	default:
		return nil, fmt.Errorf("unknown entity class %q", class)
	}

	var out []model.EntityVersion
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Str("class", class).Msg("ListEntityVersions failed")
		return nil, err
	}
	return out, nil
}

func ListIndicators() ([]model.Indicator, error) {
	var out []model.Indicator
	const q = `SELECT id, label, state, updated_at FROM indicators ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListIndicators failed")
		return nil, err
	}
	return out, nil
}
