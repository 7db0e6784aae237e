package db

import (
	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/model"
)

const screenColumns = `id, device_id, name, location, paired, created_by, created_at, updated_at`

func CreateScreen(name string, location *string, createdBy int) (model.Screen, error) {
	var s model.Screen
	const q = `
	INSERT INTO screens (name, location, paired, created_by, created_at, updated_at)
	VALUES ($1, $2, false, $3, now(), now())
	RETURNING ` + screenColumns + `;`
	if err := DB.Get(&s, q, name, location, createdBy); err != nil {
		log.Error().Err(err).Msg("CreateScreen failed")
		return model.Screen{}, err
	}
	return s, nil
}

func GetScreenByID(id int) (model.Screen, error) {
	var s model.Screen
	err := DB.Get(&s, `SELECT `+screenColumns+` FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("GetScreenByID failed")
	}
	return s, err
}

func GetScreenByDeviceID(deviceID string) (model.Screen, error) {
	var s model.Screen
	err := DB.Get(&s, `SELECT `+screenColumns+` FROM screens WHERE device_id = $1;`, deviceID)
	return s, err
}

func ListScreens() ([]model.Screen, error) {
	var out []model.Screen
	if err := DB.Select(&out, `SELECT `+screenColumns+` FROM screens ORDER BY id;`); err != nil {
		log.Error().Err(err).Msg("ListScreens failed")
		return nil, err
	}
	return out, nil
}

func UpdateScreen(id int, name, location *string) error {
	_, err := DB.Exec(`
	UPDATE screens
	   SET name = COALESCE($2, name),
	       location = COALESCE($3, location),
	       updated_at = now()
	 WHERE id = $1;`, id, name, location)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("UpdateScreen failed")
	}
	return err
}

func DeleteScreen(id int) error {
	_, err := DB.Exec(`DELETE FROM screens WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("DeleteScreen failed")
	}
	return err
}

// PairScreen attaches a device id to a screen and marks it paired.
func PairScreen(id int, deviceID string) error {
	_, err := DB.Exec(`
	UPDATE screens
	   SET device_id = $2,
	       paired = true,
	       updated_at = now()
	 WHERE id = $1;`, id, deviceID)
	if err != nil {
		log.Error().Err(err).Int("screen_id", id).Msg("PairScreen failed")
	}
	return err
}
