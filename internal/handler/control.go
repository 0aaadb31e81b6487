package handler

import (
	"encoding/json"
	"net/http"

	"firewatch/internal/dto"
	"firewatch/internal/logger"
)

// Stopper ends the detection loop at its next stop check.
type Stopper interface {
	Stop()
}

// StatusProvider reports the progress of the current run.
type StatusProvider interface {
	Status() dto.Status
}

// StopHandler asks the detection loop to stop.
func StopHandler(stopper Stopper, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Stop requested from %s", r.RemoteAddr)
		stopper.Stop()
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("stopping"))
	}
}

// StatusHandler returns the run status as JSON.
func StatusHandler(provider StatusProvider, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(provider.Status()); err != nil {
			logger.Error("Failed to encode status: %v", err)
		}
	}
}
