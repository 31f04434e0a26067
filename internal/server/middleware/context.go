package middleware

import (
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"

	"github.com/linqs/GAIA-sub004/pkg/graph"
)

type AppUser struct {
	Subject     string
	Role        string
	Permissions []string
}

// App is the state shared by every request. Graphs are not safe for
// concurrent use, so handlers hold the lock for the whole request.
type App struct {
	sync.Mutex

	Graphs *graph.Registry

	// Key resolves JWKS signing keys; Secret verifies HS256 tokens. With
	// neither set and no master key, authentication is off.
	Key          keyfunc.Keyfunc
	Secret       []byte
	MasterAPIKey string
}

// AuthEnabled reports whether requests must carry a bearer token.
func (a *App) AuthEnabled() bool {
	return a.Key != nil || len(a.Secret) > 0 || a.MasterAPIKey != ""
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
