package dataservice

import (
	"fmt"
	"strings"
)

// Layer names one decorator kind that can be stacked over the base store.
type Layer string

const (
	LayerLogging     Layer = "logging"
	LayerCaching     Layer = "caching"
	LayerObfuscation Layer = "obfuscation"
	LayerGate        Layer = "gate"
	LayerCompression Layer = "compression"
)

// DefaultLayers is the stack built when no layers are configured,
// outermost first.
var DefaultLayers = []Layer{LayerGate, LayerObfuscation, LayerCaching, LayerLogging}

// ParseLayers parses a comma-separated list such as "gate,caching,logging".
// Surrounding whitespace is ignored and the empty string yields no layers.
func ParseLayers(s string) ([]Layer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var layers []Layer
	for _, part := range strings.Split(s, ",") {
		layer := Layer(strings.ToLower(strings.TrimSpace(part)))
		if !layer.valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLayer, part)
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

func (l Layer) valid() bool {
	switch l {
	case LayerLogging, LayerCaching, LayerObfuscation, LayerGate, LayerCompression:
		return true
	}
	return false
}

func (l Layer) String() string {
	return string(l)
}
