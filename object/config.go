package object

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/classy/layout"
	"github.com/wippyai/classy/schema"
)

// DefaultSymbolPrefix qualifies class and member symbols.
const DefaultSymbolPrefix = "ClassyC_"

// DepthCheck selects when the ancestor chain bound is enforced.
// The zero value checks at construction.
type DepthCheck uint8

const (
	// DepthCheckDefine rejects over-deep classes in Define.
	DepthCheckDefine DepthCheck = 1 << iota
	// DepthCheckConstruct rejects construction of over-deep classes.
	DepthCheckConstruct
	// DepthCheckOff never enforces MaxDepth. It overrides the other bits.
	DepthCheckOff
)

// normalize resolves the zero value and DepthCheckOff.
func (d DepthCheck) normalize() DepthCheck {
	switch {
	case d&DepthCheckOff != 0:
		return DepthCheckOff
	case d == 0:
		return DepthCheckConstruct
	default:
		return d
	}
}

// Config holds configuration for a Runtime.
type Config struct {
	// Logger receives lifecycle logs. Nil uses a no-op logger.
	Logger *zap.Logger

	// Registerer receives lifecycle metrics when set.
	Registerer prometheus.Registerer

	// Schemas resolves descriptors for DefineNamed.
	Schemas schema.Source

	// SymbolPrefix qualifies class and member symbols in logs.
	// Empty uses DefaultSymbolPrefix.
	SymbolPrefix string

	// MaxDepth bounds the ancestor chain, root included. Zero uses the default of 9.
	MaxDepth int

	// MaxThreads bounds concurrently running async bodies. Zero means unbounded.
	MaxThreads int64

	// MaxObjects bounds live engine-allocated objects. Zero means unbounded.
	MaxObjects int

	// DepthCheck selects when MaxDepth is enforced. Zero checks at construction.
	DepthCheck DepthCheck

	// DisableAsync runs async methods inline and returns finished tasks.
	DisableAsync bool
}

// DefaultConfig returns the default runtime configuration.
func DefaultConfig() *Config {
	return &Config{
		Logger:       zap.NewNop(),
		SymbolPrefix: DefaultSymbolPrefix,
		MaxDepth:     layout.DefaultMaxDepth,
		DepthCheck:   DepthCheckConstruct,
	}
}
