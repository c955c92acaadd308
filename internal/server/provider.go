package server

import "github.com/google/wire"

// ProviderSet is server providers for the shortener binary. The consumer
// server is assembled by hand in cmd/analytics.
var ProviderSet = wire.NewSet(NewHTTPServer)
