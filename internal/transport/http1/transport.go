package http1

import (
	"github.com/indigo-web/framecast/alloc"
	"github.com/indigo-web/framecast/config"
	"github.com/rs/zerolog"
)

// Transport is a pair of a parser and a serializer, sharing the same config.
type Transport struct {
	*Parser
	*Serializer
}

func New(cfg *config.Config, allocator alloc.Allocator, logger zerolog.Logger) *Transport {
	return &Transport{
		Parser:     NewParser(cfg, allocator),
		Serializer: NewSerializer(cfg.NET.WriteBufferSize, logger),
	}
}
