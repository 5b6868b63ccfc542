package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/notnil/chess"
)

// EnvExecutable names the environment variable holding the path of the UCI engine executable
const EnvExecutable = "STOCKFISH_EXECUTABLE"

var (
	ErrConfig     = errors.New("engine: invalid configuration")
	ErrEngine     = errors.New("engine: internal error")
	ErrTerminated = errors.New("engine: terminated")
)

// Engine picks moves for positions. An Engine is owned by a single game and is not safe for concurrent use.
type Engine interface {
	BestMove(pos *chess.Position, limit time.Duration) (*chess.Move, error)
	Close() error
}

const (
	KindUCI     = "uci"
	KindBuiltin = "builtin"
)

// New starts an engine of the given kind. An empty kind means KindUCI.
func New(kind string) (Engine, error) {
	switch kind {
	case "", KindUCI:
		eng, err := NewFromEnv()
		if err != nil {
			return nil, err
		}
		return eng, nil
	case KindBuiltin:
		return NewBuiltin(DefaultMaxDepth), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine kind %q", ErrConfig, kind)
	}
}

// NewFromEnv starts the UCI engine found at the path in EnvExecutable
func NewFromEnv() (*UCI, error) {
	path, ok := os.LookupEnv(EnvExecutable)
	if !ok || len(path) == 0 {
		return nil, fmt.Errorf("%w: environment variable %s pointing to the engine executable is not set", ErrConfig, EnvExecutable)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: no engine executable found at %q", ErrConfig, path)
	}
	return NewUCI(path)
}
