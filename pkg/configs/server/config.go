package server

type ServerConfig struct {
	port       int32
	database   string
	connectors *ConnectorsConfig
}

func (c *ServerConfig) Port() int32 {
	return c.port
}

// Connection string for database.
func (c *ServerConfig) Database() string {
	return c.database
}

func (c *ServerConfig) Connectors() *ConnectorsConfig {
	return c.connectors
}

// Configuration for the platform connectors.
//
// to get `ConnectorsConfig` instance, use `ServerConfigMarshall` and `TrySeal` .
type ConnectorsConfig struct {
	openml      *PlatformConfig
	huggingface *PlatformConfig
}

func (c *ConnectorsConfig) OpenML() *PlatformConfig {
	return c.openml
}

func (c *ConnectorsConfig) HuggingFace() *PlatformConfig {
	return c.huggingface
}

type PlatformConfig struct {
	baseURL string
}

// API root of the platform.
func (p *PlatformConfig) BaseURL() string {
	return p.baseURL
}
