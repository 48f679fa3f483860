package tcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/protocol"
	"blackjack-server/pkg/room"
)

// maxLineBytes caps how long a single inbound record may be
const maxLineBytes = 64 * 1024

// Server accepts newline-delimited JSON connections and binds each one to
// the room as a participant session.
type Server struct {
	log  logrus.FieldLogger
	room *room.Room
}

// NewServer returns a new TCP line-protocol server
func NewServer(log logrus.FieldLogger, r *room.Room) *Server {
	return &Server{
		log:  log,
		room: r,
	}
}

// ListenAndServe accepts connections until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(listener)
}

// Serve accepts connections from the listener until it fails
func (s *Server) Serve(listener net.Listener) error {
	s.log.WithField("addr", listener.Addr().String()).Info("tcp listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	client := room.NewClient()
	log := s.log.WithFields(logrus.Fields{
		"client": client.ID,
		"remote": conn.RemoteAddr().String(),
	})

	if err := s.room.Connect(client); err != nil {
		log.WithError(err).Info("rejecting connection")
		b, _ := json.Marshal(protocol.NewError(err))
		_, _ = conn.Write(append(b, '\n'))
		_ = conn.Close()
		return
	}

	go s.writeLoop(client, conn)
	s.readLoop(client, conn, log)

	s.room.Disconnect(client)
	_ = conn.Close()
}

func (s *Server) readLoop(client *room.Client, conn net.Conn, log logrus.FieldLogger) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024), maxLineBytes)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		s.room.HandleRecord(client, line)
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Debug("connection read failed")
	}
}

// writeLoop drains the client's outbound queue onto the connection.
// A failed write tears the connection down; it never propagates further.
func (s *Server) writeLoop(client *room.Client, conn net.Conn) {
	enc := json.NewEncoder(conn)

	for {
		select {
		case msg := <-client.SendChan():
			if err := enc.Encode(msg); err != nil {
				client.CloseNow()
				_ = conn.Close()
				return
			}
		case <-client.Done():
			_ = conn.Close()
			return
		}
	}
}
