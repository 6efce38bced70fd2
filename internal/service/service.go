package service

import (
	"github.com/hkweather/backend/internal/domain"
)

// StationCache is re-exported from domain for convenience
type StationCache = domain.StationCache
