package storage

import "errors"

// ErrOrderNotFound is returned when no order exists for the requested id.
var ErrOrderNotFound = errors.New("order not found")

// ErrUserNotFound is returned when no user record exists for the buyer id.
var ErrUserNotFound = errors.New("user not found")

// ErrOrderNotSettleable is returned when the settlement lock cannot be
// acquired because the order is no longer PENDING, e.g. a duplicate
// delivery of an already-settled callback.
var ErrOrderNotSettleable = errors.New("order not in a settleable state")
