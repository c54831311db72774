package taxref

import "errors"

var (
	ErrEditionNotFound  = errors.New("no tax reference edition covers this jurisdiction and date")
	ErrUnknownProvince  = errors.New("unknown jurisdiction code")
	ErrEditionConflict  = errors.New("edition effective window overlaps an existing edition")
)
