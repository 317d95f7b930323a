package usecase

import "fmt"

// ErrPersistence indicates a storage gateway failure inside a use case.
var ErrPersistence = fmt.Errorf("chat use case persistence error")
