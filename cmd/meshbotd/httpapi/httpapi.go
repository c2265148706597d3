package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meshmind/meshbot/cmd/meshbotd/stats"
	"github.com/meshmind/meshbot/escrow"
	golog "github.com/textileio/go-log/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	log = golog.Logger("meshbotd/api")
)

// Service provides scoped access to the bot.
type Service interface {
	Snapshot() stats.Snapshot
}

// NewServer returns a new http server for bot status.
func NewServer(listenAddr string, service Service) (*http.Server, error) {
	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: createMux(service),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("stopping http server: %s", err)
		}
	}()

	log.Infof("http server started at %s", listenAddr)
	return httpServer, nil
}

func createMux(service Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", getOnly(healthHandler))
	mux.Handle("/stats", otelhttp.NewHandler(getOnly(statsHandler(service)), "stats"))
	return mux
}

func getOnly(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			httpError(w, "only GET method is allowed", http.StatusBadRequest)
			return
		}
		f(w, r)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func statsHandler(service Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := service.Snapshot()
		v := struct {
			stats.Snapshot
			Rewards string `json:"total_rewards"`
		}{
			Snapshot: snap,
			Rewards:  escrow.FormatTokens(snap.TotalRewards),
		}
		data, err := json.MarshalIndent(v, "", "\t")
		if err != nil {
			httpError(w, fmt.Sprintf("marshaling stats: %s", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err = w.Write(data); err != nil {
			log.Errorf("write failed: %v", err)
		}
	}
}

func httpError(w http.ResponseWriter, err string, status int) {
	log.Debugf("request error: %s", err)
	http.Error(w, err, status)
}
