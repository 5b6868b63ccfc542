package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/razzie/reconchess/pkg/replay"
	"github.com/razzie/reconchess/pkg/store"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Printf("Usage: %s [redis URL] [listen address]\n", os.Args[0])
		os.Exit(1)
	}
	redisURL := os.Args[1]
	addr := os.Args[2]

	db, err := store.NewDB(redisURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Printf("[replay server listening on %s]", addr)
	if err := http.ListenAndServe(addr, replay.NewServer(db)); err != nil {
		log.Fatal(err)
	}
}
