package core

import "time"

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	SetModel(model string) error
	GetAPIKey() string
	GetBaseURL() string
	GetCallTimeout() time.Duration
}
