package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/protocol"
	"blackjack-server/pkg/room"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			m.log.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient()
		log := m.log.WithFields(logrus.Fields{
			"client": client.ID,
			"remote": r.RemoteAddr,
		})

		if err := m.room.Connect(client); err != nil {
			log.WithError(err).Info("rejecting connection")
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteJSON(protocol.NewError(err))
			_ = conn.Close()
			return
		}

		go m.webSocketWriteLoop(client, conn)
		m.webSocketReadLoop(client, conn, log)

		m.room.Disconnect(client)
		_ = conn.Close()
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				client.CloseNow()
				return
			}
		case msg := <-client.SendChan():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				client.CloseNow()
				return
			}
		case <-client.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client, conn *websocket.Conn, log logrus.FieldLogger) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("connection read failed")
			}

			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		m.room.HandleRecord(client, data)
	}
}
