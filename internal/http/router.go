package http

import (
	"net/http"
	"net/url"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Rooms      *RoomHandler
	Events     *EventHandler
	Schedules  *ScheduleHandler
	Statistics *StatisticsHandler
	Snapshots  *SnapshotHandler

	// Authenticate wraps every route except login and registration.
	Authenticate func(http.Handler) http.Handler
	Middleware   []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	protected := func(fn http.HandlerFunc) http.HandlerFunc {
		if cfg.Authenticate == nil {
			return fn
		}
		wrapped := cfg.Authenticate(fn)
		return wrapped.ServeHTTP
	}

	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Login(w, r)
		})
		mux.HandleFunc("/registrations", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Register(w, r)
		})
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Users.List(w, r)
			case http.MethodPost:
				cfg.Users.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.HandleFunc("/users/", protected(func(w http.ResponseWriter, r *http.Request) {
			username, ok := pathSegment(r.URL.Path, "/users/")
			if !ok {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithUsername(r.Context(), username))
			cfg.Users.Get(w, r)
		}))
		mux.HandleFunc("/speakers/available", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Users.AvailableSpeakers(w, r)
		}))
	}

	if cfg.Rooms != nil {
		mux.HandleFunc("/rooms", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Rooms.List(w, r)
			case http.MethodPost:
				cfg.Rooms.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.HandleFunc("/rooms/suggestions", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Rooms.Suggest(w, r)
		}))
		mux.HandleFunc("/rooms/", protected(func(w http.ResponseWriter, r *http.Request) {
			code, ok := pathSegment(r.URL.Path, "/rooms/")
			if !ok {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			r = r.WithContext(ContextWithRoomCode(r.Context(), code))
			cfg.Rooms.Get(w, r)
		}))
	}

	if cfg.Events != nil {
		mux.HandleFunc("/events", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Events.List(w, r)
			case http.MethodPost:
				cfg.Events.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.HandleFunc("/events/", protected(func(w http.ResponseWriter, r *http.Request) {
			name, action, ok := eventPath(r.URL.Path)
			if !ok {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithEventName(r.Context(), name))

			switch action {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Events.Get(w, r)
				case http.MethodDelete:
					cfg.Events.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodDelete)
				}
			case "capacity":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Events.ChangeCapacity(w, r)
			case "enrollment":
				switch r.Method {
				case http.MethodPost:
					cfg.Events.Enroll(w, r)
				case http.MethodDelete:
					cfg.Events.Unenroll(w, r)
				default:
					methodNotAllowed(w, http.MethodPost, http.MethodDelete)
				}
			case "speaker":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Events.AssignSpeaker(w, r)
			case "speakers":
				switch r.Method {
				case http.MethodPost:
					cfg.Events.AddSpeaker(w, r)
				case http.MethodDelete:
					cfg.Events.RemoveSpeaker(w, r)
				default:
					methodNotAllowed(w, http.MethodPost, http.MethodDelete)
				}
			case "fill":
				if cfg.Statistics == nil {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Statistics.FillPercentage(w, r)
			default:
				http.NotFound(w, r)
			}
		}))
	}

	if cfg.Schedules != nil {
		mux.HandleFunc("/schedule", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Schedules.Daily(w, r)
		}))
		mux.HandleFunc("/schedule/report", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Schedules.DailyReport(w, r)
		}))
		mux.HandleFunc("/schedule/mine", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Schedules.Mine(w, r)
		}))
	}

	if cfg.Statistics != nil {
		mux.HandleFunc("/statistics", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Statistics.Summary(w, r)
		}))
		mux.HandleFunc("/statistics/report", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Statistics.SummaryReport(w, r)
		}))
	}

	if cfg.Snapshots != nil {
		mux.HandleFunc("/snapshots", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Snapshots.List(w, r)
			case http.MethodPost:
				cfg.Snapshots.Save(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// pathSegment extracts the single escaped segment after prefix.
func pathSegment(path, prefix string) (string, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return "", false
	}
	segment, err := url.PathUnescape(raw)
	if err != nil || segment == "" {
		return "", false
	}
	return segment, true
}

// eventPath splits "/events/{name}" and "/events/{name}/{action}".
// Event names may contain spaces, so the segment is path-unescaped.
func eventPath(path string) (name, action string, ok bool) {
	raw := strings.TrimPrefix(path, "/events/")
	if raw == "" {
		return "", "", false
	}
	if idx := strings.Index(raw, "/"); idx >= 0 {
		action = raw[idx+1:]
		raw = raw[:idx]
		if raw == "" || strings.Contains(action, "/") {
			return "", "", false
		}
	}
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		return "", "", false
	}
	return name, action, true
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
