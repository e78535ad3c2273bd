package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tooldock/tooldock/pkg/a2a"
)

type MockServer struct {
	*httptest.Server
	registry *Registry
	// Custom handlers for testing
	customRegister  http.HandlerFunc
	customGetAgents http.HandlerFunc
	customGetAgent  http.HandlerFunc
}

func NewMockServer() *MockServer {
	registry := NewRegistry()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	mock := &MockServer{
		Server:   server,
		registry: registry,
	}

	mux.HandleFunc("/agent", mock.handleRegister)
	mux.HandleFunc("/.well-known/catalog.json", mock.handleGetAgents)
	mux.HandleFunc("/agent/", mock.handleGetAgent)

	return mock
}

func (s *MockServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.customRegister != nil {
		s.customRegister(w, r)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var card a2a.AgentCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.registry.AddAgent(card)
	w.WriteHeader(http.StatusCreated)
}

func (s *MockServer) handleGetAgents(w http.ResponseWriter, r *http.Request) {
	if s.customGetAgents != nil {
		s.customGetAgents(w, r)
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	agents := s.registry.GetAgents()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(agents)
}

func (s *MockServer) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	if s.customGetAgent != nil {
		s.customGetAgent(w, r)
		return
	}

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Extract agent ID from URL path
	id := r.URL.Path[len("/agent/"):]
	agent := s.registry.GetAgent(id)

	if agent.ID == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(agent)
}

func TestClientRegisterAgent(t *testing.T) {
	Convey("Given a catalog client", t, func() {
		server := NewMockServer()
		defer server.Close()
		client := NewCatalogClient(server.URL)

		Convey("When registering a valid agent", func() {
			err := client.RegisterAgent(AgentCard{
				ID:      "test-agent",
				Name:    "Test Agent",
				URL:     "http://test-agent.example.com",
				Version: "1.0.0",
			})

			Convey("Then the registration should succeed", func() {
				So(err, ShouldBeNil)

				agents := server.registry.GetAgents()
				So(len(agents), ShouldEqual, 1)
				So(agents[0].ID, ShouldEqual, "test-agent")
			})
		})

		Convey("When the catalog rejects the card", func() {
			server.customRegister = func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			}

			err := client.RegisterAgent(AgentCard{ID: "test-agent"})

			Convey("Then a RegistrationError should be returned", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldHaveSameTypeAs, &RegistrationError{})
			})
		})
	})
}

func TestClientGetAgents(t *testing.T) {
	Convey("Given a catalog with registered agents", t, func() {
		server := NewMockServer()
		defer server.Close()

		server.registry.AddAgent(a2a.AgentCard{ID: "agent1", Name: "One"})
		server.registry.AddAgent(a2a.AgentCard{ID: "agent2", Name: "Two"})

		client := NewCatalogClient(server.URL)

		Convey("When fetching all agents", func() {
			agents, err := client.GetAgents()

			Convey("Then both agents should be returned", func() {
				So(err, ShouldBeNil)
				So(len(agents), ShouldEqual, 2)
			})
		})
	})
}

func TestClientGetAgent(t *testing.T) {
	Convey("Given a catalog with an agent", t, func() {
		server := NewMockServer()
		defer server.Close()

		server.registry.AddAgent(a2a.AgentCard{ID: "agent1", Name: "One"})

		client := NewCatalogClient(server.URL)

		Convey("When fetching an existing agent", func() {
			agent, err := client.GetAgent("agent1")

			So(err, ShouldBeNil)
			So(agent.Name, ShouldEqual, "One")
		})

		Convey("When fetching an unknown agent", func() {
			_, err := client.GetAgent("missing")

			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &NotFoundError{})
		})

		Convey("When the catalog is unreachable", func() {
			server.Close()

			_, err := client.GetAgent("agent1")

			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &ConnectionError{})
		})
	})
}
