package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/notnil/chess"
	"github.com/razzie/reconchess/pkg/store"
)

// GameStore is the part of store.DB the server reads from
type GameStore interface {
	LoadGame(ctx context.Context, id string) (*store.GameRecord, error)
	ListGames(ctx context.Context) []string
}

// Server serves stored games as JSON and as animated GIFs
type Server struct {
	http.ServeMux
	games GameStore
}

func NewServer(games GameStore) *Server {
	srv := &Server{games: games}

	srv.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, srv.games.ListGames(r.Context()))
	})

	srv.HandleFunc("/game/", func(w http.ResponseWriter, r *http.Request) {
		if record := srv.loadGame(w, r, r.URL.Path[6:]); record != nil {
			writeJSON(w, record)
		}
	})

	srv.HandleFunc("/gif/", func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Path[5:]
		record := srv.loadGame(w, r, gameID)
		if record == nil {
			return
		}
		if record.History == nil {
			http.Error(w, "Game history not available", http.StatusNotFound)
			return
		}
		serveGIF(w, gameID, func(buf io.Writer) error {
			return TurnsToGIF(buf, record.History.StartFEN, record.History.Turns)
		})
	})

	srv.HandleFunc("/belief/", func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Path[8:]
		record := srv.loadGame(w, r, gameID)
		if record == nil {
			return
		}
		startFEN := chess.StartingPosition().String()
		if record.History != nil && len(record.History.StartFEN) > 0 {
			startFEN = record.History.StartFEN
		}
		serveGIF(w, gameID+"-belief", func(buf io.Writer) error {
			return TurnsToGIF(buf, startFEN, record.Belief)
		})
	})

	return srv
}

func (srv *Server) loadGame(w http.ResponseWriter, r *http.Request, gameID string) *store.GameRecord {
	record, err := srv.games.LoadGame(r.Context(), gameID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return nil
	} else if err != nil {
		log.Println("Load error:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}
	return record
}

func serveGIF(w http.ResponseWriter, name string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.Println("GIF error:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+name+".gif")
	w.Header().Set("Content-Type", "image/gif")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("JSON error:", err)
	}
}
