package ranges

import (
	"go.uber.org/zap"

	"github.com/dshills/critic/internal/markup/parser"
)

// Parser produces the syntax nodes of a region. ParseRegion starts at from,
// which lies outside of any span, and returns every top-level node up to
// the first position outside of a span at or after to.
type Parser interface {
	ParseRegion(text string, from, to int) []parser.Node
}

// Option configures a Collection during creation.
type Option func(*Collection)

// WithParser replaces the built-in markup scanner.
func WithParser(p Parser) Option {
	return func(c *Collection) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithVerify enables the consistency checks run after every Apply.
func WithVerify(verify bool) Option {
	return func(c *Collection) {
		c.verify = verify
	}
}

// WithLogger sets the logger used for resynchronization events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}
