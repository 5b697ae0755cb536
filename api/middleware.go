package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/auth"
	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// identityResolver is the slice of the user store the auth middleware needs.
type identityResolver interface {
	FindByID(id uuid.UUID) (*models.User, error)
}

type authMiddleware struct {
	responder Responder
	tokens    auth.TokenService
	users     identityResolver
}

func newAuthMiddleware(tokens auth.TokenService, users identityResolver) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
		users:     users,
	}
}

// authenticate resolves the bearer token into an authenticated identity and
// attaches the user id to the request context. Missing, malformed, expired
// or tampered tokens fail with 401, as does a token whose identity no
// longer resolves to an existing user record.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, _, err := m.tokens.Verify(token)
		if err != nil {
			m.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		if _, err := m.users.FindByID(userID); err != nil {
			m.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithUserID(r.Context(), userID)))
	})
}

// owned is any entity carrying an immutable owning-user reference.
type owned interface {
	OwnerID() uuid.UUID
}

type ownershipMiddleware struct {
	responder Responder
}

func newOwnershipMiddleware() ownershipMiddleware {
	logger := log.With().Str("handlerName", "ownershipMiddleware").Logger()
	return ownershipMiddleware{responder: NewResponder(logger)}
}

// require guards a mutation route: the entity named by the route param must
// exist (404 otherwise) and must be owned by the authenticated caller (403
// otherwise). The request passes through unmodified on success.
func (m ownershipMiddleware) require(label, param string, lookup func(uuid.UUID) (owned, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entityID, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				m.responder.WriteError(w, errs.Validation("invalid "+param))
				return
			}

			callerID, err := ctxGetUserID(r.Context())
			if err != nil {
				m.responder.WriteError(w, errs.Unauthorized("Not Authorized."))
				return
			}

			entity, err := lookup(entityID)
			if err != nil {
				m.responder.WriteError(w, errs.FromStore("find", label, err))
				return
			}

			if entity.OwnerID() != callerID {
				m.responder.WriteError(w, errs.Forbidden(
					"You are not authorized to edit or delete this "+label))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
