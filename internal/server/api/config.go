package api

// ServerConfig configures the control API listener.
type ServerConfig struct {
	Addr string `help:"Control API listen address" default:"127.0.0.1:3243" env:"DMOVE_API_ADDR"`
}
