package locales

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const rootGroup = "site"

var ErrRouteNotFound = errors.New("locales: route not found")

// URLOptions describes the public site routes. Routes apply to every locale;
// LocaleRoutes replaces individual paths for one locale.
type URLOptions struct {
	BaseURL      string
	Routes       map[string]string
	LocaleRoutes map[string]map[string]string
}

// URLBuilder produces absolute, locale-prefixed links through go-urlkit.
type URLBuilder struct {
	resolver *Resolver
	manager  *urlkit.RouteManager
}

// NewURLBuilder registers one urlkit child group per supported locale under
// a shared root group.
func NewURLBuilder(resolver *Resolver, opts URLOptions) *URLBuilder {
	children := make([]urlkit.GroupConfig, 0, len(resolver.supported))
	for _, locale := range resolver.supported {
		paths := maps.Clone(opts.Routes)
		if paths == nil {
			paths = map[string]string{}
		}
		maps.Copy(paths, opts.LocaleRoutes[locale])
		children = append(children, urlkit.GroupConfig{
			Name:  locale,
			Path:  "/" + locale,
			Paths: paths,
		})
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    rootGroup,
			BaseURL: strings.TrimRight(opts.BaseURL, "/"),
			Paths:   maps.Clone(opts.Routes),
			Groups:  children,
		}},
	})
	return &URLBuilder{resolver: resolver, manager: manager}
}

// Build renders route for locale with the given path params. Unknown
// locales use the default locale's group.
func (b *URLBuilder) Build(locale, route string, params map[string]string) (string, error) {
	group, err := b.group(b.resolver.Resolve(locale))
	if err != nil {
		return "", err
	}
	builder, err := builderFor(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func (b *URLBuilder) group(locale string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("locales: route group %s.%s not registered", rootGroup, locale)
		}
	}()
	return b.manager.Group(rootGroup).Group(locale), nil
}

func builderFor(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("%w: %s", ErrRouteNotFound, route)
		}
	}()
	return group.Builder(route), nil
}
