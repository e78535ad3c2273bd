package catalog

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tooldock/tooldock/pkg/a2a"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	Convey("Given a new registry", t, func() {
		Convey("Should have an empty map of agents", func() {
			So(registry.agents, ShouldResemble, &sync.Map{})
		})
	})
}

func TestAddAgent(t *testing.T) {
	registry := NewRegistry()

	Convey("Given a new registry", t, func() {
		Convey("And an agent card", func() {
			agentCard := a2a.AgentCard{
				ID:   "test-agent",
				Name: "Test Agent",
			}

			Convey("When an agent is added", func() {
				registry.AddAgent(agentCard)

				Convey("It should have a registered agent", func() {
					loaded, ok := registry.agents.Load("test-agent")

					So(ok, ShouldBeTrue)
					So(loaded.(a2a.AgentCard).Name, ShouldEqual, "Test Agent")
				})
			})
		})
	})
}

func TestRegistryGetAgents(t *testing.T) {
	registry := NewRegistry()

	Convey("Given a registry with agents", t, func() {
		agent1 := a2a.AgentCard{ID: "agent1"}
		agent2 := a2a.AgentCard{ID: "agent2"}
		registry.AddAgent(agent1)
		registry.AddAgent(agent2)

		Convey("When getting all agents", func() {
			agents := registry.GetAgents()

			Convey("It should return all registered agents", func() {
				So(len(agents), ShouldEqual, 2)

				// Check that both agents are in the result without assuming order
				foundAgent1 := false
				foundAgent2 := false

				for _, agent := range agents {
					if agent.ID == "agent1" {
						foundAgent1 = true
					}
					if agent.ID == "agent2" {
						foundAgent2 = true
					}
				}

				So(foundAgent1, ShouldBeTrue)
				So(foundAgent2, ShouldBeTrue)
			})
		})
	})
}

func TestRegistryGetAgent(t *testing.T) {
	registry := NewRegistry()

	Convey("Given a registry with an agent", t, func() {
		agentCard := a2a.AgentCard{ID: "test-agent", Name: "Test Agent"}
		registry.AddAgent(agentCard)

		Convey("When getting an existing agent", func() {
			agent := registry.GetAgent("test-agent")

			Convey("It should return the agent", func() {
				So(agent.Name, ShouldEqual, "Test Agent")
			})
		})

		Convey("When getting a non-existent agent", func() {
			agent := registry.GetAgent("non-existent")

			Convey("It should return an empty agent card", func() {
				So(agent.ID, ShouldBeEmpty)
			})
		})
	})
}

func TestRegistryRemoveAgent(t *testing.T) {
	registry := NewRegistry()

	Convey("Given a registry with an agent", t, func() {
		registry.AddAgent(a2a.AgentCard{ID: "test-agent"})

		Convey("Removing it should succeed", func() {
			So(registry.RemoveAgent("test-agent"), ShouldBeTrue)
			So(registry.GetAgent("test-agent").ID, ShouldBeEmpty)
		})

		Convey("Removing an unknown agent should report false", func() {
			So(registry.RemoveAgent("non-existent"), ShouldBeFalse)
		})
	})
}
