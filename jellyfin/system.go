package jellyfin

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Version reported to clients. Several of them gate features on the
// server version, so this tracks a recent upstream Jellyfin release.
const serverVersion = "10.11.6"

// Chromecast receiver application IDs, also reported in the user
// configuration.
const (
	castReceiverStableID   = "F007D354"
	castReceiverUnstableID = "6F511C87"
)

// /health
func (j *Jellyfin) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("cache-control", "no-cache, no-store")
	w.Write([]byte("Healthy"))
}

// /GetUtcTime
//
// getUtcTimeHandler lets clients estimate clock skew for syncplay.
func (j *Jellyfin) getUtcTimeHandler(w http.ResponseWriter, r *http.Request) {
	t := time.Now().UTC()
	serveJSON(JFGetUtcTimeResponse{
		RequestReceptionTime:     t,
		ResponseTransmissionTime: t,
	}, w)
}

// /Plugins
//
// pluginsHandler returns an empty list, plugins are not supported.
func (j *Jellyfin) pluginsHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON([]JFPluginResponse{}, w)
}

// /System/Endpoint
func (j *Jellyfin) systemEndpointHandler(w http.ResponseWriter, r *http.Request) {
	// No local network discovery, every client is treated as remote.
	serveJSON(JFSystemEndpointResponse{
		IsLocal:     false,
		IsInNetwork: false,
	}, w)
}

// /System/Info
//
// systemInfoHandler returns full server info for authenticated clients.
// The filesystem paths are fictional, nothing serves them.
func (j *Jellyfin) systemInfoHandler(w http.ResponseWriter, r *http.Request) {
	response := JFSystemInfoResponse{
		Id:                         j.serverID,
		HasPendingRestart:          false,
		IsShuttingDown:             false,
		SupportsLibraryMonitor:     true,
		WebSocketPortNumber:        8096,
		CompletedInstallations:     []string{},
		CanSelfRestart:             true,
		CanLaunchWebBrowser:        false,
		ProgramDataPath:            "/jellyfin",
		WebPath:                    "/jellyfin/web",
		ItemsByNamePath:            "/jellyfin/metadata",
		CachePath:                  "/jellyfin/cache",
		LogPath:                    "/jellyfin/log",
		InternalMetadataPath:       "/jellyfin/metadata",
		TranscodingTempPath:        "/jellyfin/cache/transcodes",
		EncoderLocation:            "System",
		HasUpdateAvailable:         false,
		LocalAddress:               localAddress(r),
		OperatingSystem:            runtime.GOOS,
		OperatingSystemDisplayName: runtime.GOOS,
		ServerName:                 j.serverName,
		SystemArchitecture:         runtime.GOARCH,
		Version:                    serverVersion,
		CastReceiverApplications: []CastReceiverApplication{
			{
				Id:   castReceiverStableID,
				Name: "Stable",
			},
			{
				Id:   castReceiverUnstableID,
				Name: "Unstable",
			},
		},
	}
	serveJSON(response, w)
}

// /System/Info/Public
func (j *Jellyfin) systemInfoPublicHandler(w http.ResponseWriter, r *http.Request) {
	// The desktop app and the iOS native client hang waiting for web
	// assets we do not host, so refuse them up front.
	ua := r.Header.Get("user-agent")
	if strings.HasPrefix(ua, "Jellyfin/1") || strings.HasPrefix(ua, "JellyfinMediaPlayer") {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	response := JFSystemInfoPublicResponse{
		Id:           j.serverID,
		LocalAddress: localAddress(r),
		// The iOS client validates the exact product name:
		// https://github.com/jellyfin/jellyfin-expo/blob/7dedbc72fb53fc4b83c3967c9a8c6c071916425b/utils/ServerValidator.js#L82C49-L82C64
		ProductName:            "Jellyfin Server",
		ServerName:             j.serverName,
		Version:                serverVersion,
		StartupWizardCompleted: true,
	}
	serveJSON(response, w)
}

// /System/Ping
func (j *Jellyfin) systemPingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"Jellyfin Server\""))
}

// /System/Logs
//
// systemLogsHandler returns an empty list, logs are not exposed.
func (j *Jellyfin) systemLogsHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON([]string{}, w)
}

// POST /System/Restart
// POST /System/Shutdown
//
// systemRestartHandler refuses remote restart and shutdown requests.
func (j *Jellyfin) systemRestartHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
}

// GET /ScheduledTasks
//
// scheduledTasksHandler reports the collection scanner as the only task.
func (j *Jellyfin) scheduledTasksHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	response := []JFScheduledTasksResponse{
		{
			Name:  "Scan collections",
			State: "Idle",
			ID:    "3a025083141d3c17dd96d5f9b951287b",
			LastExecutionResult: ScheduledTaskLastExecutionResult{
				StartTimeUtc: now,
				EndTimeUtc:   now,
				Status:       "Completed",
				Name:         "Scan collections",
				Key:          "ScanCollections",
				ID:           "3a025083141d3c17dd96d5f9b951287b",
			},
		},
	}
	serveJSON(response, w)
}

// /Playback/BitrateTest?size=500000
//
// playbackBitrateTestHandler streams random bytes of the requested size
// so clients can measure their connection.
func (j *Jellyfin) playbackBitrateTestHandler(w http.ResponseWriter, r *http.Request) {
	const maxSize = int64(20 * 1024 * 1024)

	size := int64(102400)
	if s := r.URL.Query().Get("size"); s != "" {
		var err error
		size, err = strconv.ParseInt(s, 10, 64)
		if err != nil || size < 0 || size > maxSize {
			apierror(w, "invalid size", http.StatusBadRequest)
			return
		}
	}
	w.Header().Set("content-type", "application/octet-stream")
	w.Header().Set("content-length", strconv.FormatInt(size, 10))
	io.CopyN(w, rand.Reader, size)
}

func localAddress(r *http.Request) string {
	protocol := "http"
	if r.TLS != nil {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s", protocol, r.Host)
}
