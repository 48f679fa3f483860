package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"blackjack-server/internal/config"
	"blackjack-server/internal/mux"
	"blackjack-server/internal/tcp"
	"blackjack-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var tcpAddr = flag.String("tcp-addr", "", "the TCP listen address (overrides config)")
var httpAddr = flag.String("http-addr", "", "the HTTP listen address (overrides config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *tcpAddr == "" {
		*tcpAddr = cfg.TCPAddr
	}
	if *httpAddr == "" {
		*httpAddr = cfg.HTTPAddr
	}

	gameRoom := room.New(logrus.StandardLogger(), cfg.Game.StartingBalance)

	tcpServer := tcp.NewServer(logrus.StandardLogger(), gameRoom)
	go func() {
		logrus.Fatal(tcpServer.ListenAndServe(*tcpAddr))
	}()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *httpAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, logrus.StandardLogger(), gameRoom))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
