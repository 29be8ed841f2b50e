package domain

import "errors"

var (
	ErrNameEmpty       = errors.New("name empty")
	ErrNameTooLong     = errors.New("name too long")
	ErrInvalidCapacity = errors.New("max players must be at least 1")
	ErrRoomNotFound    = errors.New("room not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrRoomFull        = errors.New("room is full")
)
