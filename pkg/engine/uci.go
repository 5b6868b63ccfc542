package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
)

// process is the part of *uci.Engine the adapter drives
type process interface {
	Run(cmds ...uci.Cmd) error
	SearchResults() uci.SearchResults
	Close() error
}

// UCI runs an external engine process speaking the UCI protocol
type UCI struct {
	eng    process
	gone   bool
	closed bool
}

func NewUCI(path string) (*UCI, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to start UCI app: %w", err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("failed to initialize UCI app: %w", err)
	}
	return &UCI{eng: eng}, nil
}

func (e *UCI) BestMove(pos *chess.Position, limit time.Duration) (*chess.Move, error) {
	if e.closed || e.gone {
		return nil, ErrTerminated
	}
	cmdPos := uci.CmdPosition{Position: pos}
	cmdGo := uci.CmdGo{MoveTime: limit}
	if err := e.eng.Run(cmdPos, cmdGo); err != nil {
		if isProcessGone(err) {
			e.gone = true
			return nil, fmt.Errorf("%w: %v", ErrTerminated, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	move := e.eng.SearchResults().BestMove
	if move == nil {
		return nil, fmt.Errorf("%w: no best move for %s", ErrEngine, pos)
	}
	return move, nil
}

// Close terminates the engine process and releases its pipes, even after the process
// has already gone away. Calling it more than once is a no-op.
func (e *UCI) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.eng.Close(); err != nil && !isProcessGone(err) {
		return err
	}
	return nil
}

func isProcessGone(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, os.ErrProcessDone) ||
		errors.Is(err, syscall.EPIPE)
}
