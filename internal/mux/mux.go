package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/room"
)

// Mux handles HTTP requests: a health check and the WebSocket transport,
// which carries the same line-protocol records as the TCP listener, one
// record per text message.
type Mux struct {
	*gmux.Router
	log     logrus.FieldLogger
	version string
	room    *room.Room
}

// NewMux returns a new HTTP mux
func NewMux(version string, log logrus.FieldLogger, r *room.Room) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		log:     log,
		version: version,
		room:    r,
	}

	this.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	this.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
