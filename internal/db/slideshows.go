package db

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/model"
)

func CreateSlideshow(name string, createdBy int) (model.Slideshow, error) {
	var s model.Slideshow
	const q = `
	INSERT INTO slideshows (name, created_by, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id, name, created_by, created_at, updated_at;`
	if err := DB.Get(&s, q, name, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateSlideshow failed")
		return model.Slideshow{}, err
	}
	return s, nil
}

func GetSlideshowByID(id int) (model.Slideshow, error) {
	var s model.Slideshow
	const q = `SELECT id, name, created_by, created_at, updated_at FROM slideshows WHERE id = $1;`
	if err := DB.Get(&s, q, id); err != nil {
		return model.Slideshow{}, err
	}
	slides, err := ListSlides(id)
	if err != nil {
		return s, err
	}
	s.Slides = slides
	return s, nil
}

func ListSlideshows() ([]model.Slideshow, error) {
	var out []model.Slideshow
	const q = `SELECT id, name, created_by, created_at, updated_at FROM slideshows ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListSlideshows failed")
		return nil, err
	}
	for i := range out {
		slides, err := ListSlides(out[i].ID)
		if err != nil {
			log.Error().Err(err).Msgf("ListSlideshows: failed to load slides for slideshow %d", out[i].ID)
			return nil, err
		}
		out[i].Slides = slides
	}
	return out, nil
}

func UpdateSlideshow(id int, name *string) error {
	_, err := DB.Exec(`
	UPDATE slideshows
	   SET name = COALESCE($2, name),
	       updated_at = now()
	 WHERE id = $1;`, id, name)
	if err != nil {
		log.Error().Err(err).Int("slideshow_id", id).Msg("UpdateSlideshow failed")
	}
	return err
}

func DeleteSlideshow(id int) error {
	_, err := DB.Exec(`DELETE FROM slideshows WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("slideshow_id", id).Msg("DeleteSlideshow failed")
	}
	return err
}

// @ SLIDES

func CreateSlide(slideshowID, position, duration int, payload json.RawMessage) (model.Slide, error) {
	var s model.Slide
	const q = `
	INSERT INTO slides (slideshow_id, position, duration, payload, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id, slideshow_id, position, duration, payload, created_at, updated_at;`
	if err := DB.Get(&s, q, slideshowID, position, duration, []byte(payload)); err != nil {
		log.Error().Err(err).Int("slideshow_id", slideshowID).Msg("CreateSlide failed")
		return model.Slide{}, err
	}
	touchSlideshow(slideshowID)
	return s, nil
}

func GetSlideByID(id int) (model.Slide, error) {
	var s model.Slide
	const q = `SELECT id, slideshow_id, position, duration, payload, created_at, updated_at FROM slides WHERE id = $1;`
	if err := DB.Get(&s, q, id); err != nil {
		return model.Slide{}, err
	}
	media, err := ListMediaForSlide(id)
	if err != nil {
		return s, err
	}
	s.Media = media
	return s, nil
}

func ListSlides(slideshowID int) ([]model.Slide, error) {
	var out []model.Slide
	const q = `
	SELECT id, slideshow_id, position, duration, payload, created_at, updated_at
	  FROM slides
	 WHERE slideshow_id = $1
	 ORDER BY position, id;`
	if err := DB.Select(&out, q, slideshowID); err != nil {
		log.Error().Err(err).Int("slideshow_id", slideshowID).Msg("ListSlides failed")
		return nil, err
	}
	for i := range out {
		media, err := ListMediaForSlide(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Media = media
	}
	return out, nil
}

func UpdateSlide(id int, position, duration *int, payload json.RawMessage) error {
	var payloadArg any
	if payload != nil {
		payloadArg = []byte(payload)
	}
	_, err := DB.Exec(`
	UPDATE slides
	   SET position   = COALESCE($2, position),
	       duration   = COALESCE($3, duration),
	       payload    = COALESCE($4, payload),
	       updated_at = now()
	 WHERE id = $1;`, id, position, duration, payloadArg)
	if err != nil {
		log.Error().Err(err).Int("slide_id", id).Msg("UpdateSlide failed")
	}
	return err
}

func DeleteSlide(id int) error {
	_, err := DB.Exec(`DELETE FROM slides WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("slide_id", id).Msg("DeleteSlide failed")
	}
	return err
}

// ReorderSlides rewrites position to the index of each id in the given
// order. Ids not belonging to the slideshow are ignored by the WHERE clause.
func ReorderSlides(slideshowID int, orderedIDs []int) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	for i, id := range orderedIDs {
		if _, err := tx.Exec(`
		UPDATE slides SET position = $3, updated_at = now()
		 WHERE id = $1 AND slideshow_id = $2;`, id, slideshowID, i); err != nil {
			tx.Rollback()
			log.Error().Err(err).Int("slideshow_id", slideshowID).Msg("ReorderSlides failed")
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	touchSlideshow(slideshowID)
	return nil
}

// touchSlideshow bumps the owning slideshow's updated_at so the change
// detector sees structural edits.
func touchSlideshow(id int) {
	if _, err := DB.Exec(`UPDATE slideshows SET updated_at = now() WHERE id = $1;`, id); err != nil {
		log.Error().Err(err).Int("slideshow_id", id).Msg("touchSlideshow failed")
	}
}

// @ MEDIA

func CreateMedia(slideID int, name, mediaType, url string) (model.Media, error) {
	var m model.Media
	const q = `
	INSERT INTO media (slide_id, name, type, url, created_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, slide_id, name, type, url, created_at;`
	if err := DB.Get(&m, q, slideID, name, mediaType, url); err != nil {
		log.Error().Err(err).Int("slide_id", slideID).Msg("CreateMedia failed")
		return model.Media{}, err
	}
	return m, nil
}

func ListMediaForSlide(slideID int) ([]model.Media, error) {
	var out []model.Media
	const q = `SELECT id, slide_id, name, type, url, created_at FROM media WHERE slide_id = $1 ORDER BY id;`
	if err := DB.Select(&out, q, slideID); err != nil {
		log.Error().Err(err).Int("slide_id", slideID).Msg("ListMediaForSlide failed")
		return nil, err
	}
	return out, nil
}

func DeleteMedia(id int) error {
	_, err := DB.Exec(`DELETE FROM media WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("media_id", id).Msg("DeleteMedia failed")
	}
	return err
}
