// dashboard-proxy is the thin server-side proxy the operator dashboard
// talks to. It forwards the browser session cookie to the backend through
// the failover client and maps result variants back onto HTTP statuses.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

const appName = "dashboard-proxy"

func main() {
	utils.InitLogger(appName)
	cfg := config.FromEnv()

	api := apiclient.New(cfg)
	proxy := newProxy(api)

	r := mux.NewRouter()
	proxy.registerRoutes(r)

	// Periodically report which API bases are reachable so a dead internal
	// route is visible in the logs before an operator hits it.
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() { probeBases(api.Resolver()) }); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule base probe")
	}
	c.Start()
	defer c.Stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.SiteOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3001"
	}
	addr := ":" + port
	utils.Logger.Infof("Listening on %s", addr)
	if err := http.ListenAndServe(addr, corsHandler.Handler(requestIDMiddleware(r))); err != nil {
		utils.Logger.WithError(err).Fatal("Server stopped")
	}
}

func probeBases(resolver *apiclient.Resolver) {
	client := &http.Client{Timeout: 5 * time.Second}
	for _, base := range resolver.Candidates() {
		probeURL := resolver.BuildURL(base, routes.Health)
		resp, err := client.Get(probeURL)
		if err != nil {
			utils.Logger.WithError(err).Warnf("API base %s unreachable", base)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			utils.Logger.Warnf("API base %s unhealthy (status %d)", base, resp.StatusCode)
			continue
		}
		utils.Logger.Debugf("API base %s healthy", base)
	}
}
