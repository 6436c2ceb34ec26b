package crew

import "errors"

var (
	ErrAlreadyJoined = errors.New("brawler already joined this mission")
)
