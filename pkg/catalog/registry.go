package catalog

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tooldock/tooldock/pkg/a2a"
)

// Registry is the in-memory agent catalog.  Cards are keyed by agent id and
// live only for the lifetime of the process.
type Registry struct {
	agents *sync.Map
}

func NewRegistry() *Registry {
	return &Registry{
		agents: new(sync.Map),
	}
}

func (registry *Registry) AddAgent(agentCard a2a.AgentCard) {
	log.Info("adding agent to catalog", "id", agentCard.ID, "name", agentCard.Name)
	registry.agents.Store(agentCard.ID, agentCard)
}

func (registry *Registry) RemoveAgent(id string) bool {
	log.Info("removing agent from catalog", "id", id)

	if _, ok := registry.agents.Load(id); !ok {
		return false
	}

	registry.agents.Delete(id)
	return true
}

func (registry *Registry) GetAgent(id string) a2a.AgentCard {
	log.Debug("getting agent from catalog", "id", id)

	agent, ok := registry.agents.Load(id)

	if !ok {
		return a2a.AgentCard{}
	}

	return agent.(a2a.AgentCard)
}

func (registry *Registry) GetAgents() []a2a.AgentCard {
	log.Debug("getting all agents from catalog")

	agents := make([]a2a.AgentCard, 0)

	registry.agents.Range(func(key, value any) bool {
		agents = append(agents, value.(a2a.AgentCard))
		return true
	})

	return agents
}
