package middleware

import (
	"context"
	"net/http"
	"strings"
)

type deploymentContextKey struct{}

const defaultEnvironment = "Development"

// Deployment describes where the console is running. The topbar badge and
// cookie hardening both read it.
type Deployment struct {
	Name       string
	Code       string
	Production bool
}

// ParseDeployment maps a free-form environment label onto a Deployment.
// Blank labels resolve to Development.
func ParseDeployment(label string) Deployment {
	name := strings.TrimSpace(label)
	if name == "" {
		name = defaultEnvironment
	}
	d := Deployment{Name: name}
	switch strings.ToLower(name) {
	case "production", "prod":
		d.Code = "PROD"
		d.Production = true
	case "staging", "stg":
		d.Code = "STG"
	case "development", "dev":
		d.Code = "DEV"
	default:
		code := strings.ToUpper(name)
		if len(code) > 4 {
			code = code[:4]
		}
		d.Code = code
	}
	return d
}

// Tone selects the badge colour: production is flagged so operators notice it.
func (d Deployment) Tone() string {
	switch {
	case d.Production:
		return "danger"
	case d.Code == "STG":
		return "warning"
	default:
		return "neutral"
	}
}

// Environment attaches the parsed deployment to the request context.
func Environment(value string) func(http.Handler) http.Handler {
	deployment := ParseDeployment(value)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), deploymentContextKey{}, deployment)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DeploymentFromContext returns the deployment registered for the current
// request, defaulting to Development when unavailable.
func DeploymentFromContext(ctx context.Context) Deployment {
	if ctx != nil {
		if d, ok := ctx.Value(deploymentContextKey{}).(Deployment); ok {
			return d
		}
	}
	return ParseDeployment("")
}

// secureCookies reports whether cookies issued for r must carry the Secure flag.
func secureCookies(r *http.Request, configured bool) bool {
	return configured || r.TLS != nil || DeploymentFromContext(r.Context()).Production
}
