package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Record stores and collaborators return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: no record exists at the requested key
//   - ErrUnavailable: a backend or external collaborator could not be reached
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
