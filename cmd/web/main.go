package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/demo"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var pageSource string

var page = template.Must(template.New("index").Parse(pageSource))

type pageData struct {
	SSHHost string
	SSHPort string
	Demos   []string
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "rigid2d-web", ReportTimestamp: true})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		SSHHost: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SSHPort: config.GetEnv("SSH_PORT", "2222"),
	}
	for _, e := range demo.Registry {
		data.Demos = append(data.Demos, e.Name)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
