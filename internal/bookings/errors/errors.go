package errors

import "errors"

var ErrStoreCorrupted = errors.New("booking store file is corrupted")
