package catalog

import (
	"fmt"
	"strings"
)

// Capability is a closed-set tag describing what a component provides.
type Capability string

const (
	// Web & API
	CapWebFramework Capability = "web_framework"
	CapAPIGateway   Capability = "api_gateway"
	CapGraphQL      Capability = "graphql"

	// Data storage
	CapDatabase      Capability = "database"
	CapCache         Capability = "cache"
	CapStorage       Capability = "storage"
	CapObjectStorage Capability = "object_storage"
	CapSearch        Capability = "search"
	CapDataWarehouse Capability = "data_warehouse"

	// Messaging & streaming
	CapMessageQueue Capability = "message_queue"
	CapStreaming    Capability = "streaming"
	CapEventBus     Capability = "event_bus"

	// Security & identity
	CapAuthentication Capability = "authentication"
	CapAuthorization  Capability = "authorization"
	CapSecrets        Capability = "secrets"
	CapHighSecurity   Capability = "high_security"

	// Observability
	CapMonitoring Capability = "monitoring"
	CapLogging    Capability = "logging"
	CapTracing    Capability = "tracing"
	CapMetrics    Capability = "metrics"

	// AI/ML
	CapAIModel     Capability = "ai_model"
	CapMLFramework Capability = "ml_framework"
	CapMLPlatform  Capability = "ml_platform"
	CapVectorDB    Capability = "vector_db"

	// Infrastructure
	CapContainer      Capability = "container"
	CapOrchestration  Capability = "orchestration"
	CapServiceMesh    Capability = "service_mesh"
	CapInfrastructure Capability = "infrastructure"
	CapCICD           Capability = "ci_cd"
	CapLoadBalancer   Capability = "load_balancer"
	CapReverseProxy   Capability = "reverse_proxy"
	CapCDN            Capability = "cdn"

	// Frontend
	CapFrontend    Capability = "frontend"
	CapUIFramework Capability = "ui_framework"
	CapMobile      Capability = "mobile"

	// Integration
	CapMessageBroker Capability = "message_broker"
	CapESB           Capability = "esb"
	CapWorkflow      Capability = "workflow"

	// Commerce & communication
	CapPayment      Capability = "payment"
	CapBilling      Capability = "billing"
	CapSubscription Capability = "subscription"
	CapInvoicing    Capability = "invoicing"
	CapEmail        Capability = "email"
	CapNotification Capability = "notification"
	CapSMS          Capability = "sms"
	CapPush         Capability = "push"
)

var allCapabilities = []Capability{
	CapWebFramework, CapAPIGateway, CapGraphQL,
	CapDatabase, CapCache, CapStorage, CapObjectStorage, CapSearch, CapDataWarehouse,
	CapMessageQueue, CapStreaming, CapEventBus,
	CapAuthentication, CapAuthorization, CapSecrets, CapHighSecurity,
	CapMonitoring, CapLogging, CapTracing, CapMetrics,
	CapAIModel, CapMLFramework, CapMLPlatform, CapVectorDB,
	CapContainer, CapOrchestration, CapServiceMesh, CapInfrastructure, CapCICD,
	CapLoadBalancer, CapReverseProxy, CapCDN,
	CapFrontend, CapUIFramework, CapMobile,
	CapMessageBroker, CapESB, CapWorkflow,
	CapPayment, CapBilling, CapSubscription, CapInvoicing,
	CapEmail, CapNotification, CapSMS, CapPush,
}

var capabilityIndex = buildCapabilityIndex()

func buildCapabilityIndex() map[string]Capability {
	index := make(map[string]Capability, len(allCapabilities))
	for _, cap := range allCapabilities {
		index[string(cap)] = cap
	}
	return index
}

// ParseCapability resolves a textual capability against the closed set,
// case-insensitively. Unknown values are rejected.
func ParseCapability(value string) (Capability, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if cap, ok := capabilityIndex[normalized]; ok {
		return cap, nil
	}
	return "", fmt.Errorf("unknown capability %q", value)
}

// Capabilities returns the full closed set in declaration order.
func Capabilities() []Capability {
	out := make([]Capability, len(allCapabilities))
	copy(out, allCapabilities)
	return out
}

// Title returns a display label for the capability, e.g. "message_queue" ->
// "Message Queue". Used as the generic role label fallback.
func (c Capability) Title() string {
	parts := strings.Split(string(c), "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
