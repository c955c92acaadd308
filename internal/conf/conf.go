package conf

// Bootstrap is the top-level configuration scanned from the config source.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
}

// Server holds transport configuration.
type Server struct {
	HTTP HTTPServer `json:"http"`
}

// HTTPServer holds HTTP listener configuration. Timeout is a Go duration
// string, e.g. "1s".
type HTTPServer struct {
	Network string `json:"network"`
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Data holds configuration for the shared store, cache and event channel
// clients. The clients are created once at startup and shared for the
// process lifetime.
type Data struct {
	Database Database `json:"database"`
	Redis    Redis    `json:"redis"`
	Kafka    Kafka    `json:"kafka"`
}

// Database holds the Postgres connection configuration.
type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Redis holds the cache connection configuration. An empty Addr disables the
// cache; reads then always fall back to the store.
type Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Kafka holds the event channel configuration.
type Kafka struct {
	Brokers []string `json:"brokers"`
	Topic   string   `json:"topic"`
	Group   string   `json:"group"`
}
