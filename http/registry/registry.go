package registry

import (
	"sort"
	"sync"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/pkg/logger"
)

type SetupFunc func(g *echo.Group)

var (
	mu              sync.Mutex
	versionRegistry = make(map[string][]SetupFunc)
)

// Register router setup function for specific API version
func Register(version string, setup SetupFunc) {
	mu.Lock()
	defer mu.Unlock()
	versionRegistry[version] = append(versionRegistry[version], setup)
}

// SetupAllRoutes applies all registered routes, versions in lexical order
func SetupAllRoutes(e *echo.Echo) {
	setupValidator(e)

	log := logger.WithScope("SetupAllRoutes")

	mu.Lock()
	defer mu.Unlock()
	if len(versionRegistry) == 0 {
		log.Warn().Msg("No routes registered in versionRegistry")
		return
	}

	versions := make([]string, 0, len(versionRegistry))
	for v := range versionRegistry {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	for _, version := range versions {
		setups := versionRegistry[version]
		log.Debug().Str("version", version).Int("routes", len(setups)).Msg("Setting up version group")
		g := e.Group("/" + version)
		for _, setup := range setups {
			setup(g)
		}
	}
}

// setupValidator configures request validation using go-playground/validator
func setupValidator(e *echo.Echo) {
	e.Validator = &CustomValidator{validator: validator.New()}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates struct fields using validator tags
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
