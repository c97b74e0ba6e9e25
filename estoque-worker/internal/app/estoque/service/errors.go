package service

import "errors"

// ErrInvalidEvent - событие нельзя обработать ни при какой повторной доставке
var ErrInvalidEvent = errors.New("invalid event")
