package radiru

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const playlistContentType = "audio/x-mpegurl"

// Handler exposes the resolver over HTTP using go-chi.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler returns a Handler that resolves through svc.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes mounts the handler's endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/stations", func(r chi.Router) {
		r.Get("/", h.ListStations)
		r.Get("/{location}/playlist.m3u", h.GetPlaylist)
		r.Route("/{location}/{channel}", func(r chi.Router) {
			r.Get("/", h.GetStation)
			r.Get("/master.m3u8", h.RedirectStream)
		})
	})
}

type locationJSON struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type stationsJSON struct {
	Locations []locationJSON `json:"locations"`
	Channels  []string       `json:"channels"`
}

type stationJSON struct {
	Location string `json:"location"`
	Channel  string `json:"channel"`
	URL      string `json:"url"`
}

type errorJSON struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListStations handles GET /stations.
func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	out := stationsJSON{}
	for _, l := range Locations() {
		out.Locations = append(out.Locations, locationJSON{Name: l.String(), DisplayName: l.DisplayName()})
	}
	for _, c := range Channels() {
		out.Channels = append(out.Channels, c.String())
	}
	writeJSON(w, http.StatusOK, out)
}

// GetStation handles GET /stations/{location}/{channel}.
func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	loc, ch, url, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stationJSON{Location: loc.String(), Channel: ch.String(), URL: url})
}

// RedirectStream handles GET /stations/{location}/{channel}/master.m3u8 by
// redirecting to the resolved stream.
func (h *Handler) RedirectStream(w http.ResponseWriter, r *http.Request) {
	_, _, url, ok := h.resolve(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// GetPlaylist handles GET /stations/{location}/playlist.m3u: an M3U
// playlist of every channel that has a stream in the location.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	loc, err := ParseLocation(chi.URLParam(r, "location"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	entries := make([]PlaylistEntry, 0, len(channels))
	for _, ch := range Channels() {
		url, err := h.svc.Resolve(r.Context(), loc, ch)
		if errors.Is(err, ErrEmptyEndpoint) {
			continue
		}
		if err != nil {
			h.writeError(w, err)
			return
		}
		entries = append(entries, PlaylistEntry{Station: Station{Location: loc, Channel: ch}, URL: url})
	}

	w.Header().Set("Content-Type", playlistContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(BuildStationPlaylist(entries)))
}

// resolve parses the path parameters and resolves them. On failure it has
// already written the error response.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (Location, Channel, string, bool) {
	loc, err := ParseLocation(chi.URLParam(r, "location"))
	if err != nil {
		h.writeError(w, err)
		return 0, 0, "", false
	}
	ch, err := ParseChannel(chi.URLParam(r, "channel"))
	if err != nil {
		h.writeError(w, err)
		return 0, 0, "", false
	}

	url, err := h.svc.Resolve(r.Context(), loc, ch)
	if err != nil {
		h.writeError(w, err)
		return 0, 0, "", false
	}
	return loc, ch, url, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("resolve failed", slog.String("error", err.Error()))
	}
	writeJSON(w, status, errorJSON{Error: code, Message: err.Error()})
}

// errorStatus maps resolver errors to an HTTP status and a stable error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnknownLocation):
		return http.StatusBadRequest, "unknown_location"
	case errors.Is(err, ErrUnknownChannel):
		return http.StatusBadRequest, "unknown_channel"
	case errors.Is(err, ErrDocumentExhausted):
		return http.StatusNotFound, "no_record"
	case errors.Is(err, ErrEmptyEndpoint):
		return http.StatusNotFound, "empty_endpoint"
	case errors.Is(err, ErrMalformedDocument):
		return http.StatusBadGateway, "malformed_document"
	case errors.Is(err, ErrNetwork):
		return http.StatusBadGateway, "network_error"
	case errors.Is(err, ErrCacheWrite), errors.Is(err, ErrCacheRead):
		return http.StatusInternalServerError, "cache_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
