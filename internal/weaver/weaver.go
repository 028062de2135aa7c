package weaver

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
)

// Weaver turns an intent into zero or more ranked patterns. It reads from the
// knowledge graph but never mutates it; each invocation is stateless.
type Weaver struct {
	graph  *graph.Graph
	logger hclog.Logger
}

// New creates a weaver over the given graph.
func New(g *graph.Graph, logger hclog.Logger) *Weaver {
	return &Weaver{graph: g, logger: logger}
}

// Domain keyword families, checked in a fixed priority order; the first
// matching family wins. The ambiguity when a description matches several
// families is deliberate and covered by tests.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{"cms", []string{"cms", "content management", "content publishing", "blog", "article"}},
	{"ecommerce", []string{"e-commerce", "ecommerce", "shop", "store", "cart", "checkout"}},
	{"analytics", []string{"analytics", "dashboard", "metrics", "reporting", "visualization"}},
}

// minimalRoles maps capabilities to role labels for the minimal viable
// pattern. Unmapped capabilities fall back to the title-cased capability name.
var minimalRoles = map[catalog.Capability]string{
	catalog.CapWebFramework:   "Application Framework",
	catalog.CapDatabase:       "Data Storage",
	catalog.CapCache:          "Cache Layer",
	catalog.CapMessageQueue:   "Message Queue",
	catalog.CapAIModel:        "AI/ML Framework",
	catalog.CapAuthentication: "Authentication",
	catalog.CapStorage:        "File Storage",
	catalog.CapMonitoring:     "Monitoring",
	catalog.CapSearch:         "Search Engine",
	catalog.CapLoadBalancer:   "Load Balancer",
	catalog.CapEmail:          "Email Service",
	catalog.CapObjectStorage:  "Object Storage",
	catalog.CapPayment:        "Payment Processor",
	catalog.CapCDN:            "CDN",
}

// Weave generates ranked candidate patterns for the intent. Capabilities with
// no catalog match are dropped rather than failing the weave; an intent
// matching nothing yields an empty list, which callers report as "no patterns
// found", not as an error.
func (w *Weaver) Weave(intent *catalog.Intent) []*Pattern {
	matching := w.matchingComponents(intent)
	if len(matching) == 0 {
		w.logger.Info("no catalog matches for intent", "description", intent.Description)
		return nil
	}

	var patterns []*Pattern

	switch w.detectDomain(intent.Description) {
	case "cms":
		patterns = appendPattern(patterns, w.weaveCMS(intent, matching))
	case "ecommerce":
		patterns = appendPattern(patterns, w.weaveEcommerce(intent, matching))
	case "analytics":
		patterns = appendPattern(patterns, w.weaveAnalytics(intent, matching))
	}

	// Generic patterns are generated regardless of domain detection.
	patterns = appendPattern(patterns, w.weaveFullStack(intent, matching))
	patterns = appendPattern(patterns, w.weaveMinimalViable(intent, matching))

	// Rank by descending confidence; ties keep generation order.
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Metrics(w.graph).Confidence > patterns[j].Metrics(w.graph).Confidence
	})

	w.logger.Info("weave complete", "patterns", len(patterns))
	return patterns
}

func appendPattern(patterns []*Pattern, p *Pattern) []*Pattern {
	if p == nil {
		return patterns
	}
	return append(patterns, p)
}

// matchingComponents queries the graph per required capability, sorted by
// popularity descending. Capabilities without matches are omitted.
func (w *Weaver) matchingComponents(intent *catalog.Intent) map[catalog.Capability][]*catalog.Component {
	matching := make(map[catalog.Capability][]*catalog.Component)
	for _, cap := range intent.RequiredCapabilities {
		components := w.graph.FindByCapability(cap)
		if len(components) == 0 {
			w.logger.Debug("no components for capability", "capability", cap)
			continue
		}
		sort.SliceStable(components, func(i, j int) bool {
			return components[i].PopularityScore > components[j].PopularityScore
		})
		matching[cap] = components
	}
	return matching
}

func (w *Weaver) detectDomain(description string) string {
	lower := strings.ToLower(description)
	for _, family := range domainKeywords {
		for _, keyword := range family.keywords {
			if strings.Contains(lower, keyword) {
				return family.domain
			}
		}
	}
	return ""
}

// pick returns the first component with a preferred name, falling back to the
// most popular match.
func pick(components []*catalog.Component, preferred ...string) *catalog.Component {
	for _, name := range preferred {
		for _, c := range components {
			if c.Name == name {
				return c
			}
		}
	}
	if len(components) == 0 {
		return nil
	}
	return components[0]
}

func byName(components []*catalog.Component, name string) *catalog.Component {
	for _, c := range components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (w *Weaver) weaveCMS(intent *catalog.Intent, matching map[catalog.Capability][]*catalog.Component) *Pattern {
	webMatches, okWeb := matching[catalog.CapWebFramework]
	dbMatches, okDB := matching[catalog.CapDatabase]
	if !okWeb || !okDB {
		return nil
	}

	web := pick(webMatches, "Django", "FastAPI")
	db := pick(dbMatches, "PostgreSQL")

	p := NewPattern(
		"Modern Content Management System",
		"Complete CMS with authentication, media storage, and search",
		intent,
	)
	p.Add(web, "CMS Framework")
	p.Add(db, "Content Database")

	if auth, ok := matching[catalog.CapAuthentication]; ok {
		p.Add(auth[0], "Authentication & User Management")
	}
	if storage, ok := matching[catalog.CapStorage]; ok {
		p.Add(storage[0], "Media & File Storage")
	}
	if search, ok := matching[catalog.CapSearch]; ok {
		p.Add(search[0], "Content Search Engine")
	}
	if cache, ok := matching[catalog.CapCache]; ok {
		if redis := byName(cache, "Redis"); redis != nil {
			p.Add(redis, "Content Cache")
		}
	}

	p.Tags = []string{"cms", "content", "publishing", "media"}
	return p
}

func (w *Weaver) weaveEcommerce(intent *catalog.Intent, matching map[catalog.Capability][]*catalog.Component) *Pattern {
	webMatches, okWeb := matching[catalog.CapWebFramework]
	dbMatches, okDB := matching[catalog.CapDatabase]
	if !okWeb || !okDB {
		return nil
	}

	p := NewPattern(
		"E-commerce Platform",
		"Scalable online store with inventory, cart, orders, and payments",
		intent,
	)
	p.Add(webMatches[0], "Store Frontend & API")
	p.Add(dbMatches[0], "Product & Order Database")

	if cache, ok := matching[catalog.CapCache]; ok {
		p.Add(cache[0], "Session & Catalog Cache")
	}
	if mq, ok := matching[catalog.CapMessageQueue]; ok {
		p.Add(mq[0], "Order Processing Queue")
	}
	if monitoring, ok := matching[catalog.CapMonitoring]; ok {
		p.Add(monitoring[0], "Store Analytics")
	}

	p.Tags = []string{"ecommerce", "store", "retail", "payments"}
	return p
}

func (w *Weaver) weaveAnalytics(intent *catalog.Intent, matching map[catalog.Capability][]*catalog.Component) *Pattern {
	p := NewPattern(
		"Real-time Analytics Dashboard",
		"Data processing pipeline with visualization and monitoring",
		intent,
	)

	if mq, ok := matching[catalog.CapMessageQueue]; ok {
		if kafka := byName(mq, "Apache_Kafka"); kafka != nil {
			p.Add(kafka, "Data Ingestion Pipeline")
		}
	}
	if db, ok := matching[catalog.CapDatabase]; ok {
		p.Add(pick(db, "MongoDB"), "Analytics Data Store")
	}
	if monitoring, ok := matching[catalog.CapMonitoring]; ok {
		if grafana := byName(monitoring, "Grafana"); grafana != nil {
			p.Add(grafana, "Dashboard & Visualization")
		}
	}

	if len(p.Components) == 0 {
		return nil
	}
	p.Tags = []string{"analytics", "dashboard", "metrics", "visualization"}
	return p
}

// weaveFullStack composes a web framework and database pairing, preferring
// FastAPI with PostgreSQL when both matched, else the most popular of each.
func (w *Weaver) weaveFullStack(intent *catalog.Intent, matching map[catalog.Capability][]*catalog.Component) *Pattern {
	webMatches, okWeb := matching[catalog.CapWebFramework]
	dbMatches, okDB := matching[catalog.CapDatabase]
	if !okWeb || !okDB {
		return nil
	}

	web := pick(webMatches, "FastAPI")
	db := pick(dbMatches, "PostgreSQL")

	p := NewPattern(
		"Full Stack Web Application",
		"Production-ready web API with a relational database",
		intent,
	)
	p.Add(web, "API Framework")
	p.Add(db, "Primary Database")

	if cache, ok := matching[catalog.CapCache]; ok {
		if redis := byName(cache, "Redis"); redis != nil {
			p.Add(redis, "Cache & Session Store")
		}
	}
	if orm := byName(dbMatches, "SQLAlchemy"); orm != nil {
		p.Add(orm, "ORM & Data Layer")
	}

	p.Tags = []string{"production", "api", "database"}
	return p
}

// weaveMinimalViable picks exactly one top-ranked component per requested
// capability.
func (w *Weaver) weaveMinimalViable(intent *catalog.Intent, matching map[catalog.Capability][]*catalog.Component) *Pattern {
	p := NewPattern(
		"Minimal Viable Architecture",
		"Minimal components to satisfy all requirements",
		intent,
	)

	for _, cap := range intent.RequiredCapabilities {
		components, ok := matching[cap]
		if !ok {
			continue
		}
		role, ok := minimalRoles[cap]
		if !ok {
			role = cap.Title()
		}
		p.Add(components[0], role)
	}

	if len(p.Components) == 0 {
		return nil
	}
	p.Tags = []string{"minimal", "simple", "beginner"}
	return p
}
