package domain

import "errors"

// ErrDuplicateWord is returned when a blacklist word already exists
var ErrDuplicateWord = errors.New("word already in blacklist")
