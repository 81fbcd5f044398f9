package types

import (
	"os"
	"strings"
)

// ContextUserKey is where AuthMiddleware stores the authenticated user on
// the gin context.
const ContextUserKey = "user"

// AllowedOrigins feeds both the CORS middleware and the websocket origin
// check. It only constrains browsers: the CLI sends no Origin header and
// is admitted without one.
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	// Vite dev and preview servers of the web client.
	origins := []string{
		"http://localhost:5173",
		"http://localhost:4173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
