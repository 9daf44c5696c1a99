package server

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ServerConfigMarshall struct {
	Port       int32                     `yaml:"port"`
	Database   string                    `yaml:"database"`
	Connectors *ConnectorsConfigMarshall `yaml:"connectors,omitempty"`
}

var _ Marshalled[*ServerConfig] = &ServerConfigMarshall{}

func (s *ServerConfigMarshall) trySeal(path string) *ServerConfig {
	connectors := s.Connectors
	if connectors == nil {
		connectors = &ConnectorsConfigMarshall{}
	}
	return &ServerConfig{
		port:       required(s.Port, path+".port"),
		database:   required(s.Database, path+".database"),
		connectors: connectors.trySeal(path + ".connectors"),
	}
}

type ConnectorsConfigMarshall struct {
	OpenML      *PlatformConfigMarshall `yaml:"openml,omitempty"`
	HuggingFace *PlatformConfigMarshall `yaml:"huggingface,omitempty"`
}

func (c *ConnectorsConfigMarshall) trySeal(path string) *ConnectorsConfig {
	return &ConnectorsConfig{
		openml: withDefault(c.OpenML, "https://www.openml.org/api/v1/json").
			trySeal(path + ".openml"),
		huggingface: withDefault(c.HuggingFace, "https://datasets-server.huggingface.co").
			trySeal(path + ".huggingface"),
	}
}

type PlatformConfigMarshall struct {
	BaseURL string `yaml:"baseUrl"`
}

func (p *PlatformConfigMarshall) trySeal(path string) *PlatformConfig {
	return &PlatformConfig{
		baseURL: required(p.BaseURL, path+".baseUrl"),
	}
}

func withDefault(p *PlatformConfigMarshall, baseURL string) *PlatformConfigMarshall {
	if p == nil {
		return &PlatformConfigMarshall{BaseURL: baseURL}
	}
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	return p
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
