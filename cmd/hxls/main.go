package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"hxls/internal/config"
	"hxls/internal/server"
)

func main() {
	versionFlag := flag.Bool("version", false, "Print the version of the program")
	logFile := flag.String("logfile", "/tmp/hxls.log", "Write logs to this file, empty for stderr")
	verbose := flag.Int("verbose", 1, "Log verbosity")
	configFile := flag.String("config", "", "JSON configuration file")
	tcpAddress := flag.String("tcp", "", "Listen for clients on this TCP address instead of stdio")
	wsAddress := flag.String("websocket", "", "Listen for clients on this WebSocket address instead of stdio")
	trace := flag.Bool("trace", false, "Log every JSON-RPC message")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s language server version %s\n", server.Name, server.Version)
		return
	}

	var logPath *string
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logPath = logFile

		// stdout carries the protocol
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	commonlog.Configure(*verbose, logPath)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Default()
	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			log.Fatalf("Failed to open config: %v", err)
		}
		cfg, err = config.LoadFromJSON(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configFile, err)
		}
	}

	s, err := server.NewServer(cfg, server.WithTrace(*trace))
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		s.Close()
	}()

	switch {
	case *tcpAddress != "":
		err = s.RunTCP(*tcpAddress)
	case *wsAddress != "":
		err = s.RunWebSocket(*wsAddress)
	default:
		err = s.RunStdio()
	}
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
